package observability

import (
	"testing"
	"time"

	"github.com/danmuck/thaiqr/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog/log"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)

	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("qrd", "POST", "/decode", 200, 12*time.Millisecond)
	RecordRender(3 * time.Millisecond)

	log.Debug().Msg("observability/metrics: registration idempotent and recording paths executed")
}

func TestRecordDecodeCounts(t *testing.T) {
	testlog.Start(t)

	ok := decodes.WithLabelValues("text", OutcomeOK)
	invalid := decodes.WithLabelValues("camera", OutcomeInvalid)
	okBefore := testutil.ToFloat64(ok)
	invalidBefore := testutil.ToFloat64(invalid)
	mismatchBefore := testutil.ToFloat64(checksumMismatches)

	RecordDecode("text", OutcomeOK, 4, false)
	RecordDecode("camera", OutcomeInvalid, 0, false)

	if got := testutil.ToFloat64(ok) - okBefore; got != 1 {
		t.Fatalf("unexpected ok delta: %v", got)
	}
	if got := testutil.ToFloat64(invalid) - invalidBefore; got != 1 {
		t.Fatalf("unexpected invalid delta: %v", got)
	}
	if got := testutil.ToFloat64(checksumMismatches) - mismatchBefore; got != 1 {
		t.Fatalf("checksum mismatch should count only ok decodes, delta=%v", got)
	}
}

func TestRecordGeneration(t *testing.T) {
	testlog.Start(t)

	counter := generations.WithLabelValues(OutcomeError)
	before := testutil.ToFloat64(counter)
	RecordGeneration(OutcomeError)
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("unexpected delta: %v", got)
	}
}
