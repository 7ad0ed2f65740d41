package tracing

// Span attribute keys for the report pipeline.
const (
	AttrReportKind    = "report.kind"
	AttrReportGroupBy = "report.group_by"
	AttrReportPeriod  = "report.period"
	AttrPeriodUnit    = "report.period_unit"
	AttrRecordCount   = "store.record_count"
	AttrResultCount   = "report.result_count"
	AttrCategory      = "filter.category"
	AttrManufacturer  = "filter.manufacturer"
	AttrDBPath        = "store.db_path"
)

// Span names for the report pipeline.
const (
	SpanReport       = "report"
	SpanStoreList    = "store.list"
	SpanComputeGrow  = "engine.growth"
	SpanComputeShare = "engine.share"
	SpanEncode       = "presentation.encode"
)
