package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"finitefield.org/hanko-headmeta/internal/seo"
)

func registerValidateCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check page documents for metadata errors",
		Long: `Check page documents for metadata errors.

Without arguments every page in the content directory is checked.`,
		RunE: runValidate,
	}
	parent.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := appFromCommand(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		pages, err := a.store().All(cmd.Context())
		for _, page := range pages {
			fmt.Fprintf(out, "ok\t%s/%s\n", page.Lang, page.Slug)
		}
		if err != nil {
			reportInvalid(out, err)
			return errors.New("content directory has invalid pages")
		}
		return nil
	}

	failed := 0
	for _, path := range args {
		if _, err := parseFile(path, "", a.cfg.Site.TitleTemplate); err != nil {
			failed++
			reportInvalid(out, err)
			continue
		}
		fmt.Fprintf(out, "ok\t%s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents invalid", failed, len(args))
	}
	return nil
}

func reportInvalid(w io.Writer, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			reportInvalid(w, e)
		}
		return
	}
	fmt.Fprintf(w, "invalid\t%v\n", err)
	var verr *seo.ValidationError
	if errors.As(err, &verr) {
		for _, field := range verr.Fields() {
			fmt.Fprintf(w, "\t- %s\n", field)
		}
	}
}
