// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/formats/scd"
	"github.com/ik5/scdtool/internal/audiotest"
)

// TestMain lets the test binary stand in for oggenc.
func TestMain(m *testing.M) {
	if code, ok := audiotest.RunFakeOggenc(); ok {
		os.Exit(code)
	}

	os.Exit(m.Run())
}

type fixture struct {
	dir, template, input string
	entry0               scd.Entry
}

func newFixture(t *testing.T, input []byte) fixture {
	t.Helper()

	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		template: filepath.Join(dir, "template.scd"),
		input:    filepath.Join(dir, "input.wav"),
		entry0:   audiotest.PCMEntry(0x10, 1, 22050, 40),
	}

	tpl := audiotest.SCDTemplate(f.entry0, audiotest.PCMEntry(0x20, 2, 44100, 80))
	if err := os.WriteFile(f.template, tpl, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(f.input, input, 0o644); err != nil {
		t.Fatal(err)
	}

	return f
}

func runCLI(args ...string) (int, string) {
	var stderr bytes.Buffer
	code := run(context.Background(), "scdtool", args, &stderr)
	return code, stderr.String()
}

func readEntry(t *testing.T, path string, i int) scd.Entry {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	r, err := scd.Parse(data)
	if err != nil {
		t.Fatalf("output is not an scd file: %v", err)
	}
	if r.EntryCount() != 2 {
		t.Fatalf("output has %d entries, want 2", r.EntryCount())
	}
	e, err := r.ReadEntry(i)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	code, out := runCLI("-h")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	for _, want := range []string{"Usage examples", "--loop-begin", "-template"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output does not mention %q", want)
		}
	}
}

func TestRunArgumentErrors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, audiotest.WAV16(8000, 1, audiotest.Ramp16(10, 1)))
	out := filepath.Join(f.dir, "out.scd")

	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"missing output", []string{"-t", f.template}},
		{"bad codec", []string{"-t", f.template, "-o", out, "-c", "flac"}},
		{"bad loop point", []string{"-t", f.template, "-o", out, "--loop-begin", "abc"}},
		{"bad log level", []string{"-t", f.template, "-o", out, "--log-level", "loud"}},
		{"positional argument", []string{"-t", f.template, "-o", out, "extra"}},
		{"pcm without input", []string{"-t", f.template, "-o", out, "-c", "pcm"}},
		{"missing config", []string{"-t", f.template, "-o", out, "--config", filepath.Join(f.dir, "none.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, stderr := runCLI(tt.args...)
			if code != exitFailure {
				t.Errorf("exit code = %d, want %d", code, exitFailure)
			}
			if !strings.Contains(stderr, "Error parsing arguments. Use -h to show help.") {
				t.Errorf("stderr = %q", stderr)
			}
		})
	}

	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written despite argument errors: %v", err)
	}
}

func TestRunCopy(t *testing.T) {
	t.Parallel()

	samples := audiotest.Ramp16(300, 2)
	f := newFixture(t, audiotest.WAV16(32000, 2, samples))
	out := filepath.Join(f.dir, "nested", "dir", "out.scd")

	code, stderr := runCLI("-t", f.template, "-i", f.input, "-o", out, "-e", "1", "-m")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stderr, "Done!") {
		t.Errorf("stderr does not report completion: %q", stderr)
	}

	if e0 := readEntry(t, out, 0); !bytes.Equal(e0.Bytes(), f.entry0.Bytes()) {
		t.Error("entry 0 changed")
	}

	e1 := readEntry(t, out, 1)
	if e1.Header.Format != scd.FormatPCM || e1.Header.ChannelCount != 2 || e1.Header.Reserved != 0x20 {
		t.Errorf("entry 1 header = %+v", e1.Header)
	}
	got := audio.Info{Channels: 2, SampleRate: 32000, Format: audio.FormatPCM16, Data: e1.Data}.Int16s()
	for i := range samples {
		if got[i] != samples[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestRunPCMMono(t *testing.T) {
	t.Parallel()

	f := newFixture(t, audiotest.WAV16(44100, 2, audiotest.Ramp16(500, 2)))
	out := filepath.Join(f.dir, "out.scd")

	code, stderr := runCLI("--template", f.template, "--input", f.input, "--output", out, "--codec", "PCM", "--mono")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	e0 := readEntry(t, out, 0)
	if e0.Header.Format != scd.FormatPCM || e0.Header.ChannelCount != 1 || len(e0.Data) != 500*2 {
		t.Errorf("entry 0 = %+v with %d bytes", e0.Header, len(e0.Data))
	}
	if e0.Header.Reserved != 0x10 {
		t.Errorf("Reserved = %#x, want 0x10", e0.Header.Reserved)
	}
}

func TestRunProcessingErrors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, audiotest.WAV16(8000, 1, audiotest.Ramp16(10, 1)))
	junk := filepath.Join(f.dir, "junk.bin")
	if err := os.WriteFile(junk, []byte("ID3 not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"entry index out of range", []string{"-t", f.template, "-i", f.input, "-e", "2"}},
		{"missing template", []string{"-t", filepath.Join(f.dir, "none.scd"), "-i", f.input}},
		{"missing input", []string{"-t", f.template, "-i", filepath.Join(f.dir, "none.wav")}},
		{"unknown input format", []string{"-t", f.template, "-i", junk}},
		{"template is not scd", []string{"-t", f.input, "-i", f.input}},
		{"unknown region", []string{"-t", ":mars::music/ex2/a.scd", "-i", f.input}},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(f.dir, "out", strings.Repeat("x", i+1)+".scd")

			code, stderr := runCLI(append(tt.args, "-o", out)...)
			if code != exitFailure {
				t.Errorf("exit code = %d, want %d", code, exitFailure)
			}
			if !strings.Contains(stderr, "Error processing data.") {
				t.Errorf("stderr = %q", stderr)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Errorf("output exists after a failure: %v", err)
			}
		})
	}
}

// The fake encoder is selected through the environment, so this test does
// not run in parallel.
func TestRunOgg(t *testing.T) {
	t.Setenv(audiotest.FakeOggencEnv, "ok")

	f := newFixture(t, audiotest.WAV16(44100, 2, audiotest.Ramp16(3*44100, 2)))
	out := filepath.Join(f.dir, "out.scd")

	code, stderr := runCLI(
		"-t", f.template, "-i", f.input, "-o", out,
		"-c", "ogg", "-oq", "5.0", "-m", "-e", "1",
		"--loop-begin", "0", "--loop-end", "2.0",
		"--oggenc", os.Args[0],
	)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stderr, "\rEncoding: block 33 out of 33") {
		t.Errorf("stderr does not show the final progress line: %q", stderr)
	}

	if e0 := readEntry(t, out, 0); !bytes.Equal(e0.Bytes(), f.entry0.Bytes()) {
		t.Error("entry 0 changed")
	}

	e1 := readEntry(t, out, 1)
	if e1.Header.Format != scd.FormatOgg || e1.Header.ChannelCount != 1 || e1.Header.Reserved != 0x20 {
		t.Errorf("entry 1 header = %+v", e1.Header)
	}
	if loop, ok := e1.MarkLoop(); !ok || loop != (audio.Loop{Begin: 0, End: 88200}) {
		t.Errorf("entry 1 loop = %+v, %v, want 0..88200", loop, ok)
	}
}

func TestRunConfigDefaults(t *testing.T) {
	t.Parallel()

	f := newFixture(t, audiotest.WAV16(44100, 2, audiotest.Ramp16(100, 2)))
	cfg := filepath.Join(f.dir, "scdtool.yaml")
	if err := os.WriteFile(cfg, []byte("log_level: warn\ndefaults:\n  codec: pcm\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		extra    []string
		channels uint32
	}{
		// pcm from the config honours --mono
		{"config codec", nil, 1},
		// an explicit copy ignores it
		{"flag wins", []string{"-c", "copy"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), "out.scd")
			args := append([]string{"-t", f.template, "-i", f.input, "-o", out, "-m", "--config", cfg}, tt.extra...)

			code, stderr := runCLI(args...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
			}
			if e := readEntry(t, out, 0); e.Header.ChannelCount != tt.channels {
				t.Errorf("channels = %d, want %d", e.Header.ChannelCount, tt.channels)
			}
		})
	}
}

func TestRunConfigWarningsUseLogLevel(t *testing.T) {
	t.Parallel()

	f := newFixture(t, audiotest.WAV16(44100, 2, audiotest.Ramp16(100, 2)))
	cfg := filepath.Join(f.dir, "clamped.yaml")
	if err := os.WriteFile(cfg, []byte("defaults:\n  ogg_quality: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		level string
		shown bool
	}{
		{"warn level", "warn", true},
		{"error level", "error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), "out.scd")
			code, stderr := runCLI("-t", f.template, "-i", f.input, "-o", out, "-c", "pcm",
				"--config", cfg, "--log-level", tt.level)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
			}

			shown := strings.Contains(stderr, "level=WARN") && strings.Contains(stderr, "defaults.ogg_quality")
			if shown != tt.shown {
				t.Errorf("clamp warning shown = %v, want %v; stderr:\n%s", shown, tt.shown, stderr)
			}
		})
	}
}
