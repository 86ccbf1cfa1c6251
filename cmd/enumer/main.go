// Command enumer is the external solver loop around package engine: it
// loads a task document, builds the full operator vocabulary, and drives
// engine.Driver.Next() until an admitted program's values match the
// task's required output or --timeout elapses. All decision logic lives
// in package engine; this file only wires a task path and a timeout to
// the driver and formats its output.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/synthkit/enumer/engine"
)

func main() {
	timeoutSeconds := flag.Int("timeout", 0, "stop after this many seconds (0 = no limit)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [--timeout <seconds>] <task.json>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	task, err := engine.LoadTask(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if *timeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*timeoutSeconds)*time.Second)
		defer cancel()
	}

	vocab := defaultVocabulary()
	d := engine.New(vocab, task)

	for {
		select {
		case <-ctx.Done():
			os.Exit(0)
		default:
		}

		prog, ok := d.Next()
		if !ok {
			os.Exit(0)
		}

		fmt.Println(engine.FormatProgram(d.Bank(), prog))

		if matchesOutput(d.Bank(), prog, task) {
			os.Exit(0)
		}
	}
}

// defaultVocabulary registers every builtin operator this module ships.
// Registration order is the order printed programs are produced in when
// two operators both admit a candidate at the same level.
func defaultVocabulary() *engine.Vocabulary {
	v := engine.NewVocabulary()
	v.Register(engine.IntAdd)
	v.Register(engine.IntSub)
	v.Register(engine.IntMul)
	v.Register(engine.IntPow)
	v.Register(engine.IntPostfixInc)
	v.Register(engine.StrLength)
	v.Register(engine.StrConcat)
	v.Register(engine.ArrayPush)
	v.Register(engine.ArrayIndex)
	v.Register(engine.ArrayLen)
	return v
}

// matchesOutput reports whether prog's per-example values equal the
// task's declared output, when the task declares one. A state-only task
// (engine.Task.ExpectedOutput == nil) never matches; the loop then runs
// until --timeout elapses.
func matchesOutput(b *engine.Bank, prog engine.AnyProg, task *engine.Task) bool {
	out := task.ExpectedOutput
	if out == nil || prog.Kind != out.Kind {
		return false
	}
	switch out.Kind {
	case engine.KindInt:
		return slices.Equal(engine.ValuesOf[engine.Int](b, prog), out.IntValues)
	case engine.KindStr:
		return slices.Equal(engine.ValuesOf[engine.Str](b, prog), out.StrValues)
	default:
		return slices.EqualFunc(
			engine.ValuesOf[engine.IntArray](b, prog),
			out.ArrayValues,
			func(a, c engine.IntArray) bool { return slices.Equal(a, c) },
		)
	}
}
