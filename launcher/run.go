package launcher

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/kitfox-games/gameday/fileutil"
)

// run is one launch subprocess. For the buffered variant only out is used;
// for the streaming variant lines carries one element per output line, with
// stderr lines tagged, in per-stream emission order.
type run struct {
	cmd   *exec.Cmd
	out   *bytes.Buffer
	lines chan string
}

// start spawns the launch command with stdout and stderr going to one shared
// buffer, for callers that want the whole transcript at once.
func (s *Server) start(namePrefix string) (*run, error) {
	cmd := s.command(namePrefix)
	out := &bytes.Buffer{}
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	s.starts.Add(1)
	return &run{cmd: cmd, out: out}, nil
}

func (r *run) wait() (string, error) {
	err := r.cmd.Wait()
	return fileutil.Tidy(r.out.Bytes()), err
}

// startStreaming spawns the launch command with both output streams drained
// concurrently into a single ordered line channel. Lines stay whole; the
// two streams interleave only at line boundaries, best effort. The channel
// closes once both streams hit EOF, after which cmd.Wait is safe.
func (s *Server) startStreaming(namePrefix string) (*run, error) {
	cmd := s.command(namePrefix)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	s.starts.Add(1)

	lines := make(chan string, 64)
	var wg sync.WaitGroup
	wg.Add(2)
	go scanLines(stdout, "", lines, &wg)
	go scanLines(stderr, "[stderr] ", lines, &wg)
	go func() {
		wg.Wait()
		close(lines)
	}()

	return &run{cmd: cmd, lines: lines}, nil
}

func scanLines(r io.Reader, tag string, lines chan<- string, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines <- tag + scanner.Text()
	}

	// A scan error (an overlong line, say) stops short of EOF. The pipe must
	// still be drained or the child blocks writing and never exits.
	if err := scanner.Err(); err != nil {
		io.Copy(io.Discard, r)
		lines <- tag + fmt.Sprintf("(output truncated: %v)", err)
	}
}
