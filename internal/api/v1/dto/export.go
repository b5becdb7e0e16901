package dto

// ExportRequest is the body of POST /meetings/{id}/export
type ExportRequest struct {
	Format   string   `json:"format" binding:"required,oneof=txt md json xlsx"`
	Sections []string `json:"sections" binding:"omitempty,dive,oneof=summary action_items transcript participants"`
}
