package api

// RunRequest is the optional JSON body of a run trigger. Form-provider
// webhooks post an empty or irrelevant body; only dry_run is honored.
type RunRequest struct {
	DryRun bool `json:"dry_run"`
}
