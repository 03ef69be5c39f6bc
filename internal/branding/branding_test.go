package branding

import "testing"

func TestEmbeddedDefaults(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"cli name", CLIName(), "nvup"},
		{"product", Product(), "NVIM"},
		{"binary", Binary(), "nvim"},
		{"version flag", VersionFlag(), "--version"},
		{"release url", ReleaseURL(), "https://github.com/neovim/neovim/releases/tag/nightly"},
		{"download url", DownloadURL(), "https://github.com/neovim/neovim/releases/download/nightly/nvim.appimage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("download_url"); got != "NVUP_DOWNLOAD_URL" {
		t.Errorf("EnvVar() = %q, want %q", got, "NVUP_DOWNLOAD_URL")
	}
}
