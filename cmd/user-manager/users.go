package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"user-manager/internal/manager"
	"user-manager/internal/model"
	"user-manager/internal/tui"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, optionally filtered by name or email",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(flags.logFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			mgr := newManager(flags, logger)
			if err := mgr.FetchAll(cmd.Context()); err != nil {
				return noticeError(mgr, err)
			}
			mgr.SetSearch(search)
			printUsers(cmd.OutOrStdout(), mgr.Snapshot().Visible())
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive filter on name or email")
	return cmd
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(flags.logFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			mgr := newManager(flags, logger)
			mgr.SetName(name)
			mgr.SetEmail(email)
			if err := mgr.SubmitAdd(cmd.Context()); err != nil {
				return noticeError(mgr, err)
			}
			return reportAndList(cmd.OutOrStdout(), mgr)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the user")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Email of the user")
	return cmd
}

func newUpdateCmd(flags *globalFlags) *cobra.Command {
	var (
		id          int64
		name, email string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace the name and email of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id <= 0 {
				return errors.New("--id must be a positive integer")
			}
			logger, closeLog, err := newLogger(flags.logFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			mgr := newManager(flags, logger)
			mgr.StartEdit(model.User{ID: id, Name: name, Email: email})
			if err := mgr.SubmitUpdate(cmd.Context()); err != nil {
				return noticeError(mgr, err)
			}
			return reportAndList(cmd.OutOrStdout(), mgr)
		},
	}

	cmd.Flags().Int64VarP(&id, "id", "i", 0, "ID of the user to update")
	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "New email")
	return cmd
}

func newDeleteCmd(flags *globalFlags) *cobra.Command {
	var (
		id  int64
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a user after confirmation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id <= 0 {
				return errors.New("--id must be a positive integer")
			}
			logger, closeLog, err := newLogger(flags.logFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			var confirm manager.Confirmer = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirm = manager.ConfirmFunc(func(string) bool { return true })
			}

			mgr := newManager(flags, logger)
			done, err := mgr.Remove(cmd.Context(), id, confirm)
			if err != nil {
				return noticeError(mgr, err)
			}
			if !done {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			return reportAndList(cmd.OutOrStdout(), mgr)
		},
	}

	cmd.Flags().Int64VarP(&id, "id", "i", 0, "ID of the user to delete")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// promptConfirmer спрашивает подтверждение в out и читает ответ y/yes из in.
func promptConfirmer(in io.Reader, out io.Writer) manager.Confirmer {
	reader := bufio.NewReader(in)
	return manager.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
}

// noticeError превращает уведомление Manager в ошибку команды.
func noticeError(mgr *manager.Manager, err error) error {
	if n := mgr.Snapshot().Notice; n != nil && n.IsError() {
		return errors.New(n.Message)
	}
	return err
}

// reportAndList печатает уведомление об успехе и обновлённый список.
func reportAndList(out io.Writer, mgr *manager.Manager) error {
	s := mgr.Snapshot()
	if s.Notice != nil {
		if s.Notice.IsError() {
			return errors.New(s.Notice.Message)
		}
		fmt.Fprintln(out, s.Notice.Message)
	}
	printUsers(out, s.Visible())
	return nil
}

func printUsers(out io.Writer, users []model.User) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Email")
	if len(users) == 0 {
		t.Row("", tui.NoUsersPlaceholder, "")
	}
	for _, u := range users {
		t.Row(strconv.FormatInt(u.ID, 10), u.Name, u.Email)
	}
	fmt.Fprintln(out, t.String())
}
