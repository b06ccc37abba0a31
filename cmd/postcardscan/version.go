package main

import (
	"flag"
	"fmt"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Program() string { return v.r.program + " version" }

func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.r.out(), "%s version %s\n", v.r.program, version)
	if commit != "" {
		fmt.Fprintf(v.r.out(), "commit %s\n", commit)
	}
	if date != "" {
		fmt.Fprintf(v.r.out(), "built %s\n", date)
	}
	return nil
}
