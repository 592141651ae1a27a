package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/kitfox-games/gameday/azutil"
	"github.com/kitfox-games/gameday/version"
	"golang.org/x/crypto/ssh/terminal"
)

func Confirm(args ...interface{}) (bool, error) {
	for {
		yesno, err := Prompt(args...)
		if err != nil {
			return false, err
		}
		if strings.ToLower(yesno) == "yes" {
			return true, nil
		}
		if strings.ToLower(yesno) == "no" {
			return false, nil
		}
		Print(`please respond "yes" or "no"`)
	}
}

func Confirmf(format string, args ...interface{}) (bool, error) {
	return Confirm(fmt.Sprintf(format, args...))
}

func Fatal(args ...interface{}) {
	for i, arg := range args {
		if err, ok := arg.(error); ok {
			args[i] = helpful(err)
		}
	}
	op(opFatal, fmt.Sprint(withCaller(args...)...))
}

func Fatalf(format string, args ...interface{}) {
	for i, arg := range args {
		if err, ok := arg.(error); ok {
			args[i] = helpful(err)
		}
	}
	op(opFatal, fmt.Sprint(withCaller(fmt.Sprintf(format, args...))...))
}

func Must(err error) {
	if err != nil {
		op(opFatal, fmt.Sprint(withCaller(helpful(err))...))
	}
}

func Must2[T any](v T, err error) T {
	if err != nil {
		op(opFatal, fmt.Sprint(withCaller(helpful(err))...))
	}
	return v
}

func Print(args ...interface{}) {
	op(opPrint, fmt.Sprint(args...))
}

func Printf(format string, args ...interface{}) {
	op(opPrint, fmt.Sprintf(format, args...))
}

func Prompt(args ...interface{}) (string, error) {
	op(opBlock, "")
	defer op(opUnblock, "")
	fmt.Fprint(os.Stderr, append(args, " ")...)
	if Interactivity() == NonInteractive {
		Fatal("(cannot accept input in non-interactive mode)")
	}
	s, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	s = strings.Trim(s, "\r\n")
	if !terminal.IsTerminal(0) {
		fmt.Fprintf(os.Stderr, "%s (read from non-TTY)\n", s)
	}
	return s, nil
}

func Spin(args ...interface{}) {
	op(opSpin, fmt.Sprint(args...))
}

func Stop(args ...interface{}) {
	op(opStop, fmt.Sprint(args...))
}

// StopErr calls Stop with either the error code from the given non-nil error
// as an argument or with the string "ok" otherwise.
func StopErr(err error) error {
	s := "ok"
	if err != nil {
		if code := azutil.ErrorCode(err); code != "" {
			s = code
		} else {
			s = err.Error()
		}
	}
	Stop(s)
	return err
}

func Stopf(format string, args ...interface{}) {
	op(opStop, fmt.Sprintf(format, args...))
}

// helpful might swap an obtuse error for one that's more helpful so that the
// fatal error that's about to terminate the program can be...helpful.
func helpful(err error) error {

	// If the Azure SDK can't construct or redeem a credential, the most
	// likely explanation is that there's no az login session and no service
	// principal in the environment.
	var afErr *azidentity.AuthenticationFailedError
	if errors.As(err, &afErr) {
		return fmt.Errorf("%w\ncouldn't authenticate to Azure; run `az login` or set AZURE_CLIENT_ID, AZURE_CLIENT_SECRET, and AZURE_TENANT_ID in the environment", err)
	}

	// A 404 on the subscription almost always means ARM_SUBSCRIPTION_ID names
	// a subscription the authenticated principal can't see.
	if azutil.ErrorCodeIs(err, azutil.SubscriptionNotFound) || azutil.ErrorStatusIs(err, 404) {
		return fmt.Errorf("%w\nthe subscription in ARM_SUBSCRIPTION_ID doesn't exist or isn't visible to the authenticated principal", err)
	}

	return err
}

func shorten(pathname string) string {
	return filepath.Join(
		filepath.Base(filepath.Dir(pathname)),
		filepath.Base(pathname),
	)
}

// withCaller decorates log lines with caller information, though in a way
// that feels less to users like they did something horrible. This is cribbed
// from the standard library's log.Logger.Output.
func withCaller(args ...interface{}) []interface{} {
	_, file, line, ok := runtime.Caller(2)
	if ok {
		args = append(args, fmt.Sprintf(
			" (%s:%d; gameday version %s)",
			shorten(file),
			line,
			version.Version,
		))
	}
	return args
}
