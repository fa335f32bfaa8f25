package admin

// ResetResponse confirms a full wipe of the corpus
type ResetResponse struct {
	Status string `json:"status"`
}
