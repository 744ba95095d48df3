package dto

type AnalyticsQuery struct {
	TimeRange string `form:"timeRange" binding:"omitempty,time_range"`
}

type ExportQuery struct {
	TimeRange string `form:"timeRange" binding:"omitempty,time_range"`
	Format    string `form:"format"`
}
