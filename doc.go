// Package snazy turns streams of log lines into aligned, optionally
// coloured, human readable output.
//
// Each line goes through a Processor. JSON records in the zap/knative
// {level, msg, ts} shape or the pipelines-as-code {severity, timestamp,
// caller, message} shape are recognised out of the box; other layouts can be
// mapped with JSON pointers through Config.JSONKeys. Lines wrapped by kail
// ("namespace/pod[container]: ...") are unwrapped first. The output of
// `kubectl get events` is detected and re-rendered as a table. Anything else
// passes through with only highlight rules applied.
//
// Basic usage:
//
//	cfg := snazy.DefaultConfig()
//	cfg.Color = snazy.ColorNever
//	p, err := snazy.New(cfg, os.Stdout)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := p.Run(os.Stdin, &snazy.StreamState{}); err != nil {
//		log.Fatal(err)
//	}
//
// Line by line:
//
//	var st snazy.StreamState
//	info, ok, err := p.Process(&st, `{"level":"info","msg":"foo"}`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if ok {
//		fmt.Print(p.Render(info))
//	}
package snazy
