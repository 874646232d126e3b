package cli

import "testing"

func TestReportFlagsRegisteredOnce(t *testing.T) {
	for _, name := range []string{"opening", "closing", "include", "format"} {
		if reportCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("report --%s should be a persistent flag on the parent command", name)
		}
	}

	// The subcommands inherit the window flags rather than redefining them.
	for _, cmd := range reportCmd.Commands() {
		for _, name := range []string{"opening", "closing", "include", "format"} {
			if cmd.Flags().Lookup(name) != nil {
				t.Errorf("%s redefines --%s instead of inheriting it", cmd.Name(), name)
			}
		}
	}
}

func TestPvCommandFlags(t *testing.T) {
	for _, name := range []string{"timing", "allocation", "opening", "closing"} {
		if pvCmd.Flags().Lookup(name) == nil {
			t.Errorf("pv --%s flag is not registered", name)
		}
	}
}
