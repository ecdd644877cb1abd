package slogx

import "fmt"

func fmtError(err error) string {
	if _, ok := err.(fmt.Formatter); ok {
		return fmt.Sprintf("%+v", err)
	}
	return err.Error()
}
