package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/envconfig"
)

func newCheckCmd(flags *rootFlags, logger logrus.FieldLogger) *cobra.Command {
	var halt bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve the template and print the result as KEY=VALUE lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := envconfig.ModeError
			if halt {
				mode = envconfig.ModeHalt
			}

			tmpl, err := resolveTemplate(flags, logger, mode)
			if err != nil {
				reportMissing(cmd.ErrOrStderr(), err)
				return err
			}

			io.WriteString(cmd.OutOrStdout(), envconfig.AppendText(tmpl.Pairs()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&halt, "halt", false, "print the failure and exit 1 immediately")
	return cmd
}

func newSaveCmd(flags *rootFlags, logger logrus.FieldLogger) *cobra.Command {
	var (
		file string
		keys []string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Resolve the template and merge the values into a .env file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmpl, err := resolveTemplate(flags, logger, envconfig.ModeError)
			if err != nil {
				reportMissing(cmd.ErrOrStderr(), err)
				return err
			}

			target := targetFile(file)
			changed, err := envconfig.Save(tmpl, envconfig.SaveOptions{
				File:   target,
				Keys:   keys,
				Logger: logger,
			})
			if err != nil {
				return err
			}

			status := "unchanged"
			if changed {
				status = "updated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", target, dimStyle.Render(status))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file to update (default: discovered .env)")
	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "only write these keys (repeatable)")
	return cmd
}

func newAppendCmd(flags *rootFlags, logger logrus.FieldLogger) *cobra.Command {
	var (
		file string
		keys []string
	)

	cmd := &cobra.Command{
		Use:   "append",
		Short: "Append resolved keys to a .env file without merging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(keys) == 0 {
				return errors.New("at least one --key is required")
			}

			tmpl, err := resolveTemplate(flags, logger, envconfig.ModeError)
			if err != nil {
				reportMissing(cmd.ErrOrStderr(), err)
				return err
			}

			return envconfig.Append(tmpl, envconfig.SaveOptions{
				File:   targetFile(file),
				Keys:   keys,
				Logger: logger,
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file to append to (default: discovered .env)")
	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "keys to append (repeatable)")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode VALUE...",
		Short: "Print each value as it would be written to a .env file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), envconfig.EncodeValue(arg))
			}
			return nil
		},
	}
}
