package main

import (
	"fmt"

	"github.com/gglas/gglas-linker/pkg/envelope"
)

// exitCode maps an error to the process exit code: coded envelope errors are
// expected rejections, anything else is unexpected.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if _, ok := envelope.AsError(err); ok {
		return exitRejected
	}
	return exitUnexpected
}

// describeError renders an error for the terminal.
func describeError(err error) string {
	envErr, ok := envelope.AsError(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}

	switch envErr.Code {
	case envelope.ErrCodeMissingSecret:
		return "Secret missing. Use --secret, --secret-file or --secret-env."
	case envelope.ErrCodeMissingPayloadSource:
		return "Payload missing. Use --payload-file or --name/--role/--scopes/--exp."
	case envelope.ErrCodeSignatureInvalid:
		return "Signature invalid."
	case envelope.ErrCodeExpired:
		return "Payload expired (exp)."
	case envelope.ErrCodeInvalidExpiry:
		return fmt.Sprintf("Invalid --exp: %s", detail(envErr))
	case envelope.ErrCodeMalformedPayload:
		return fmt.Sprintf("Invalid payload file: %s", detail(envErr))
	case envelope.ErrCodeMalformedToken:
		return fmt.Sprintf("Malformed link: %s", detail(envErr))
	}
	return fmt.Sprintf("Error: %v", err)
}

func detail(e *envelope.Error) string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}
