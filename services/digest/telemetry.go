package digest

import "duandigest/lib/telemetry"

var tracer = telemetry.Tracer("duandigest/services/digest")

var meter = telemetry.Meter("duandigest/services/digest")
var runsCounter, _ = meter.Int64Counter("digest.runs")
