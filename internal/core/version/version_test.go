package version

import (
	"bytes"
	"testing"

	kit "openbook/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestInfo_Defaults(t *testing.T) {
	kit.Serial(t)
	bi := Info("openbook-build")
	if bi.Service != "openbook-build" || bi.Version != "dev" || bi.Commit != "none" || bi.Date != "unknown" {
		t.Fatalf("unexpected build info %+v", bi)
	}
}

func TestInfo_LdflagsOverride(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &version, "v0.1.0")
	kit.Swap(t, &commit, "abcd")
	if bi := Info("x"); bi.Version != "v0.1.0" || bi.Commit != "abcd" {
		t.Fatalf("override not visible: %+v", bi)
	}
}

func TestBuildInfo_LogsAsObject(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	l.Info().Object("build", Info("openbook-probe")).Msg("start")
	kit.MustContain(t, buf.String(), `"service":"openbook-probe"`)
	kit.MustContain(t, buf.String(), `"version":`)
}
