package jandan

import (
	"duandigest/lib/telemetry"
)

var tracer = telemetry.Tracer("duandigest/jandan")

var meter = telemetry.Meter("duandigest/jandan")
var pagesFetched, _ = meter.Int64Counter("jandan.pages.fetched")
var entriesExtracted, _ = meter.Int64Counter("jandan.entries.extracted")
var entriesSkipped, _ = meter.Int64Counter("jandan.entries.skipped")
