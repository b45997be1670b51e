package version

import "testing"

func TestInfo_Defaults(t *testing.T) {
	bi := Info("contactguard-api")
	if bi.Service != "contactguard-api" || bi.Version != "dev" || bi.Commit != "none" || bi.Date != "unknown" {
		t.Fatalf("Info = %+v", bi)
	}
	if got, want := bi.String(), "contactguard-api dev (none, unknown)"; got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
}
