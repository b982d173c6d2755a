// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// FakeOggencEnv switches a test binary into oggenc mode: "ok" encodes,
// "fail" reports an error after draining stdin.
const FakeOggencEnv = "SCDTOOL_FAKE_OGGENC"

// RunFakeOggenc is meant for TestMain. When FakeOggencEnv is set it acts as
// oggenc on the process's stdio and returns the exit code with ok true, so a
// test can point an encoder at os.Args[0].
func RunFakeOggenc() (code int, ok bool) {
	switch os.Getenv(FakeOggencEnv) {
	case "ok":
		return FakeOggenc(os.Args[1:], os.Stdin, os.Stdout, os.Stderr), true
	case "fail":
		io.Copy(io.Discard, os.Stdin)
		fmt.Fprintln(os.Stderr, "oggenc: boom")
		return 1, true
	}
	return 0, false
}

// FakeOggenc reads a float WAV from stdin and writes an OggStream of the
// same layout carrying the -c comments and the -q value as QUALITY=.
func FakeOggenc(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	data, err := io.ReadAll(stdin)
	if err != nil || len(data) < 44 {
		fmt.Fprintln(stderr, "short input")
		return 2
	}

	if binary.LittleEndian.Uint16(data[20:22]) != 3 || binary.LittleEndian.Uint16(data[34:36]) != 32 {
		fmt.Fprintln(stderr, "not float wav")
		return 2
	}

	channels := int(binary.LittleEndian.Uint16(data[22:24]))
	rate := int(binary.LittleEndian.Uint32(data[24:28]))
	size := int(binary.LittleEndian.Uint32(data[40:44]))
	if size != len(data)-44 {
		fmt.Fprintf(stderr, "data size %d, got %d bytes\n", size, len(data)-44)
		return 2
	}

	var comments []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-c":
			i++
			comments = append(comments, args[i])
		case "-q":
			i++
			comments = append(comments, "QUALITY="+args[i])
		}
	}

	frames := uint64(size / (channels * 4))
	if _, err := stdout.Write(OggStream(channels, rate, frames, comments...)); err != nil {
		return 2
	}

	return 0
}
