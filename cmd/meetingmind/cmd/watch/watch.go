package watch

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meetingmind/internal/app/jobtracker"
	"meetingmind/internal/app/logging"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/notes"
	"meetingmind/internal/app/realtime"
	"meetingmind/internal/client"
	"meetingmind/internal/config"
)

var (
	baseURL    string
	userID     string
	userName   string
	meetingID  string
	transcribe bool
	notesToken string
	notesText  string
)

func init() {
	Cmd.Flags().StringVarP(&baseURL, "url", "u", "http://localhost:"+config.DefaultHTTPPort, "API base URL")
	Cmd.Flags().StringVar(&userID, "user", "", "user id sent as X-User-ID")
	Cmd.Flags().StringVar(&userName, "name", "", "display name sent as X-User-Name")
	Cmd.Flags().StringVarP(&meetingID, "meeting", "m", "", "follow the transcription job of this meeting")
	Cmd.Flags().BoolVar(&transcribe, "transcribe", false, "submit the meeting for transcription before following it")
	Cmd.Flags().StringVar(&notesToken, "notes", "", "share token whose notes to print")
	Cmd.Flags().StringVar(&notesText, "write-notes", "", "overwrite the shared notes with this text (requires --notes)")

	Cmd.MarkFlagRequired("user")
}

// Cmd represents the watch command
var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow a user's meetings over the realtime stream",
	Long: `Follow a user's meetings over the realtime stream

- Keeps a local meeting cache in sync with INSERT, UPDATE and DELETE events
- Prints a line when a transcript, summary or action items become available
- Reconnects with exponential backoff when the stream drops
- Optionally tracks one transcription job until it finishes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.NewLogger(true)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		api := client.New(client.Config{BaseURL: baseURL, UserID: userID, UserName: userName}, logger)
		return run(ctx, api, cmd.OutOrStdout(), logger)
	},
}

func run(ctx context.Context, api *client.Client, out io.Writer, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	local := realtime.NewMemoryBroker()

	var cache *realtime.CacheSynchronizer
	refetch := func() {
		list, err := api.ListMeetings(ctx, 1, 100, "")
		if err != nil {
			logger.Warn("Failed to refresh meetings", zap.Error(err))
			return
		}
		cache.SetList(list.Meetings)
		fmt.Fprintf(out, "%d meeting(s)\n", list.Pagination.Total)
	}

	cache = realtime.NewCacheSynchronizer(local, realtime.CacheOptions{
		OwnerID: userID,
		OnNotify: func(id string, n realtime.Notification) {
			m, _ := cache.Detail(id)
			fmt.Fprintf(out, "%s  %s  %s\n", time.Now().Format(time.TimeOnly), n, titleOr(cache, m, id))
		},
		OnStale: func() { go refetch() },
		Logger:  logger,
	})
	defer cache.Close()

	var manager *realtime.ConnectionManager
	dial := api.Dialer(func(e realtime.Event) {
		manager.MarkActivity()
		if e.Type == realtime.EventPing {
			return
		}
		if err := local.Publish(ctx, e); err != nil {
			logger.Warn("Failed to apply event", zap.Error(err))
		}
	})
	manager = realtime.NewConnectionManager(dial, realtime.ConnectionOptions{
		OnReconnect: func(realtime.Channel) {
			fmt.Fprintln(out, "reconnected")
			refetch()
		},
		OnFailure: func(err error) {
			fmt.Fprintln(out, err)
			cancel()
		},
		Logger: logger,
	})
	defer manager.Destroy()

	refetch()
	if _, err := manager.Connect(ctx); err != nil {
		return err
	}

	if meetingID != "" {
		tracker := jobtracker.New(api, meetingID, jobtracker.Options{
			OnChange: func(st jobtracker.Status) {
				line := fmt.Sprintf("transcription %s: %s", meetingID, st.Status)
				if st.Error != "" {
					line += " (" + st.Error + ")"
				}
				fmt.Fprintln(out, line)
			},
			Logger: logger,
		})
		tracker.Start(ctx, transcribe)
		defer tracker.Stop()
	}

	if notesToken != "" {
		syncer := notes.NewSyncer(api, notes.NewLocalMirror(), notesToken, notes.Editor{Name: nameOr(userName, userID)}, logger)
		n, err := syncer.Load(ctx)
		if err != nil {
			return err
		}
		if notesText != "" {
			if n, err = syncer.Update(ctx, notesText); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "notes v%d by %s:\n%s\n", n.Version, n.EditedBy, n.Content)
	}

	<-ctx.Done()
	return nil
}

func titleOr(cache *realtime.CacheSynchronizer, m model.Meeting, id string) string {
	if m.Title != "" {
		return m.Title
	}
	for _, item := range cache.List() {
		if item.ID == id {
			return item.Title
		}
	}
	return id
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
