// Package testutil provides shared test helpers for meetingmind.
//
// It contains:
//
//   - Database helpers (db_helpers.go): NewTestStore opens a migrated SQLite store in a
//     temporary directory and closes it when the test ends.
//   - Provider mocks (mock_providers.go): testify mocks of the speech and language model
//     providers, so tests can assert exactly which provider calls were made.
//   - Service mocks (mock_services.go): testify mocks of the v1 service interfaces for
//     handler tests.
//   - Fixtures (fixtures.go): meetings and provider transcripts used across packages.
//
// # Usage
//
//	func TestStatus(t *testing.T) {
//	    store := testutil.NewTestStore(t)
//	    m := testutil.SeedMeeting(t, store, testutil.MeetingWithJob("t-1"))
//
//	    transcriber := testutil.NewMockTranscriber(t)
//	    transcriber.On("Get", mock.Anything, "t-1").Return(testutil.TwoSpeakerTranscript("t-1"), nil).Once()
//	    // ...
//	    transcriber.AssertNumberOfCalls(t, "Get", 1)
//	}
package testutil
