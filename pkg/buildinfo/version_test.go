package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = old })

	got := Template()
	if !strings.Contains(got, "version v1.2.3") || !strings.HasPrefix(got, "{{.Name}}") {
		t.Errorf("Template() = %q", got)
	}
}

func TestKeyVals(t *testing.T) {
	kv := KeyVals()
	if len(kv)%2 != 0 {
		t.Fatalf("KeyVals() has odd length %d", len(kv))
	}
	if kv[0] != "version" || kv[1] != Version {
		t.Errorf("KeyVals()[0:2] = %v", kv[:2])
	}
}
