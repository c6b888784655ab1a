package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// RunExtension runs the external alloc-<subcommand> binary found in the PATH,
// with the global flags passed as environment variables.
//
// It returns false when there is no such binary, otherwise true and the exit
// code of the extension.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "alloc-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		log.Printf("external command %q not found in PATH: %v", name, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(),
		EnvStateFile+"="+*stateFile,
		EnvCurrency+"="+*currency,
		EnvUSDT+"="+*usdtPrice,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
