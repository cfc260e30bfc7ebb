package cmd

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"

	"github.com/hobbyos/userrt/go/crt"
	"github.com/hobbyos/userrt/go/kernel/hv"
	"github.com/hobbyos/userrt/go/libc"
	"github.com/hobbyos/userrt/go/models"
	"github.com/hobbyos/userrt/go/models/cpu"
	"github.com/hobbyos/userrt/go/models/frames"
	"github.com/hobbyos/userrt/go/programs"
)

// FlagsFile is read from each user config folder and prepended to run's
// arguments.
const FlagsFile = "flags"

// DefaultFlags collects shell-split flags from every config folder.
func DefaultFlags() ([]string, error) {
	var out []string
	configDirs := configdir.New("hobbyos", "userrt")
	for _, config := range configDirs.QueryFolders(configdir.All) {
		data, err := config.ReadFile(FlagsFile)
		if err != nil {
			continue
		}
		args, err := SplitFlags(string(data))
		if err != nil {
			return nil, errors.Wrapf(err, "bad %s in %s", FlagsFile, config.Path)
		}
		out = append(out, args...)
	}
	return out, nil
}

// SplitFlags splits a flags file into arguments. Lines starting with # are
// skipped.
func SplitFlags(data string) ([]string, error) {
	var out []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shellwords.Parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %q", line)
		}
		out = append(out, args...)
	}
	return out, nil
}

// ProgramArgs splits the positional arguments into a program name and its
// argv. A "--" right after the name is dropped.
func ProgramArgs(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	argv := []string{args[0]}
	rest := args[1:]
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}
	return args[0], append(argv, rest...)
}

type RuntimeCmd struct {
	Config *models.Config

	SetupFlags  func() error
	SetupKernel func() error
	Teardown    func()

	Kernel *hv.Kernel
	Libc   *libc.Libc
	Flags  *flag.FlagSet

	Stdout, Stderr io.Writer
}

func NewRuntimeCmd() *RuntimeCmd {
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	return &RuntimeCmd{
		Flags:  fs,
		Stdout: os.Stdout,
		Stderr: colorable.NewColorableStderr(),
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// PrintError prints err and its stack trace when it carries one.
func (c *RuntimeCmd) PrintError(err error) {
	w := c.Stderr
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(w, "Error: %s\n", err)
	if err, ok := err.(stackTracer); ok {
		// parse full path and method name for each stack frame
		var rows [][]string
		for _, f := range err.StackTrace() {
			fullpath := ""
			fileline := fmt.Sprintf("%s:%d", f, f)
			method := fmt.Sprintf("%n", f)

			frame := fmt.Sprintf("%+s", f)
			tmp := strings.SplitN(frame, "\n", 3)
			if len(tmp) == 2 {
				pathsplit := strings.Split(tmp[0], "/")
				method = pathsplit[len(pathsplit)-1]
				fullpath = strings.TrimSpace(tmp[1])
			}
			rows = append(rows, []string{fullpath, fileline, method})
			if method == "main.main" {
				break
			}
		}
		widths := make([]int, 2)
		for _, f := range rows {
			for i, s := range f[:2] {
				if len(s) > widths[i] {
					widths[i] = len(s)
				}
			}
		}
		for _, f := range rows {
			for i := 0; i < 2; i++ {
				if widths[i] > 0 {
					pad := strings.Repeat(" ", widths[i]-len(f[i]))
					fmt.Fprintf(w, "%s%s | ", f[i], pad)
				}
			}
			fmt.Fprintf(w, "%s()\n", f[2])
		}
	}
}

func (c *RuntimeCmd) usage() {
	w := c.Stderr
	fmt.Fprintf(w, "Usage: %s [options] <program> [-- args...]\n\nOptions:\n", os.Args[0])
	var flags, tflags []*flag.Flag
	c.Flags.VisitAll(func(f *flag.Flag) {
		switch f.Name {
		case "strace", "strsize", "color", "frames":
			tflags = append(tflags, f)
		default:
			flags = append(flags, f)
		}
	})
	models.PrintFlags(w, flags)
	fmt.Fprintf(w, "\nTrace Options:\n")
	models.PrintFlags(w, tflags)
	fmt.Fprintf(w, "\nPrograms:\n")
	for _, p := range programs.List() {
		fmt.Fprintf(w, "  %-8s %s\n", p.Name, p.Desc)
	}
	fmt.Fprintf(w, "\nExample:\n  %s -strace sort -- -r 3 1 2\n", os.Args[0])
}

func (c *RuntimeCmd) printMaps() {
	maps := c.Kernel.Mem.Maps()
	w := c.Config.Out()
	fmt.Fprintf(w, "memory map (%d bytes mapped, %d heap bytes used):\n", maps.Mapped(), c.Kernel.HeapUsed())
	for _, pg := range maps {
		fmt.Fprintf(w, "  %s\n", models.ColorDim(pg.String(), c.Config.Color))
	}
}

// Run parses argv, runs the named program and returns its exit status.
func (c *RuntimeCmd) Run(argv []string) int {
	fs := c.Flags
	fs.SetOutput(c.Stderr)

	strace := fs.Bool("strace", false, "trace syscalls")
	strsize := fs.Int("strsize", 30, "limit -strace'd strings to length (0 disables)")
	color := fs.Bool("color", isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()), "colorize trace output")
	frameFile := fs.String("frames", "", "capture presented frames to file")

	verbose := fs.Bool("v", false, "verbose output")
	unbuffered := fs.Bool("unbuffered", false, "send every stream write straight to the kernel")
	heapBase := fs.Uint64("heap", models.DefaultHeapBase, "heap base address")
	heapSize := fs.Uint64("heapsize", models.DefaultHeapSize, "heap size in bytes")
	root := fs.String("root", "", "directory visible to fopen and stat")
	stdin := fs.String("stdin", "", "file queued as the program's stdin")
	outfile := fs.String("o", "", "redirect trace output to file (default stderr)")
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to <file>")

	fs.Usage = c.usage
	if c.SetupFlags != nil {
		if err := c.SetupFlags(); err != nil {
			c.PrintError(err)
			return 1
		}
	}
	if err := fs.Parse(argv[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	name, args := ProgramArgs(fs.Args())
	if name == "" {
		fs.Usage()
		return 1
	}
	prog := programs.Lookup(name)
	if prog == nil {
		fmt.Fprintf(c.Stderr, "unknown program %q\n", name)
		return 1
	}

	config := models.DefaultConfig()
	config.TraceSys = *strace
	config.Strsize = *strsize
	config.Color = *color
	config.Verbose = *verbose
	config.Unbuffered = *unbuffered
	config.HeapBase = *heapBase
	config.HeapSize = *heapSize
	config.Output = c.Stderr
	if *outfile != "" {
		out, err := os.OpenFile(*outfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			c.PrintError(errors.Wrap(err, "failed to open trace output"))
			return 1
		}
		defer out.Close()
		config.Output = out
		config.Color = false
	}
	c.Config = config

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			c.PrintError(errors.Wrap(err, "failed to create cpu profile"))
			return 1
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	mem := cpu.NewMem(64, binary.LittleEndian)
	k, err := hv.NewKernel(mem, config)
	if err != nil {
		c.PrintError(err)
		return 1
	}
	c.Kernel = k
	k.Tee(1, c.Stdout)
	k.Tee(2, c.Stderr)
	if *root != "" {
		k.FS = os.DirFS(*root)
	}
	if *stdin != "" {
		data, err := ioutil.ReadFile(*stdin)
		if err != nil {
			c.PrintError(errors.Wrap(err, "failed to read stdin file"))
			return 1
		}
		k.Feed(0, data)
	}
	if *frameFile != "" {
		f, err := os.Create(*frameFile)
		if err != nil {
			c.PrintError(errors.Wrap(err, "failed to create frame file"))
			return 1
		}
		w, err := frames.NewWriter(f)
		if err != nil {
			f.Close()
			c.PrintError(err)
			return 1
		}
		defer func() {
			if err := w.Close(); err != nil {
				c.PrintError(errors.Wrap(err, "failed to close frame file"))
			}
			if *verbose {
				fmt.Fprintf(c.Stderr, "captured %d frames to %s\n", w.Count(), *frameFile)
			}
		}()
		k.Frames = w
	}
	if c.SetupKernel != nil {
		if err := c.SetupKernel(); err != nil {
			c.PrintError(err)
			return 1
		}
	}
	if c.Teardown != nil {
		defer c.Teardown()
	}

	c.Libc = libc.New(k, mem, config)
	err = crt.StartArgs(c.Libc, prog.Main, args)
	if *verbose {
		c.printMaps()
	}
	if e, ok := err.(models.ExitStatus); ok {
		return e.Code()
	} else if err != nil {
		c.PrintError(err)
		return 1
	}
	return 0
}
