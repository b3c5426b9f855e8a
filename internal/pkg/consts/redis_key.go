package consts

const (
	IngestJobKey        = "ingest:job:"
	DashboardSummaryKey = "dashboard:summary:"
	TopCommentsKey      = "insights:top:"
)
