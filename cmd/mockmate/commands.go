package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/app"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/gateway"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/session"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/speech"
)

// tokenPath returns where the bearer token is cached between invocations.
func tokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mockmate", "token"), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func loadToken() string {
	if v := os.Getenv("MOCKMATE_TOKEN"); v != "" {
		return v
	}
	path, err := tokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// newGateway builds a client with any cached token installed.
func newGateway(serverURL string) *gateway.Client {
	client := gateway.NewClient(serverURL)
	if token := loadToken(); token != "" {
		client.SetToken(token)
	}
	return client
}

func newRegisterCmd(serverURL *string) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a MockMate account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := gateway.NewClient(*serverURL)
			if err := client.Register(cmd.Context(), username, email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account %s created. Run `mockmate login` to sign in.\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(serverURL *string) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and cache the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := gateway.NewClient(*serverURL)
			token, err := client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := saveToken(token); err != nil {
				return fmt.Errorf("signed in, but could not cache the token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newRunCmd(serverURL *string) *cobra.Command {
	var (
		role           string
		jobDescription string
		interviewType  string
		difficulty     int
		duration       int
		inputMethod    string
		recognizerURL  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an interview session",
		Long: `Run a full interview session: MockMate asks a fixed series of questions,
you answer by typing (or speaking, when a recognizer endpoint is configured),
and a scored feedback report is printed when the session ends.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := session.Config{
				Role:                 role,
				CustomJobDescription: jobDescription,
				Type:                 interviewType,
				Difficulty:           difficulty,
				Duration:             duration,
				InputMethod:          inputMethod,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client := newGateway(*serverURL)

			var engine speech.Engine
			if inputMethod != session.InputText && recognizerURL != "" {
				engine = speech.NewWSEngine(recognizerURL)
			}

			runner := app.NewRunner(client, engine, cmd.InOrStdin(), cmd.OutOrStdout())
			record, err := runner.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if record == nil {
				return errors.New("session did not produce a record")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nSession ended: %d of %d questions answered.\n",
				record.QuestionsAnswered, record.TotalQuestions)

			report, err := client.Feedback(cmd.Context(), record.InterviewID)
			if err != nil {
				return fmt.Errorf("session saved, but feedback is not available yet: %w", err)
			}
			runner.RenderReport(report)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "target role, e.g. software-engineer")
	cmd.Flags().StringVar(&jobDescription, "job-description", "", "custom job description (instead of --role)")
	cmd.Flags().StringVar(&interviewType, "type", session.TypeMixed, "interview type: technical, behavioral or mixed")
	cmd.Flags().IntVar(&difficulty, "difficulty", 2, "difficulty from 1 (intern) to 4 (staff)")
	cmd.Flags().IntVar(&duration, "duration", 30, "session length in minutes (10-60)")
	cmd.Flags().StringVar(&inputMethod, "input", session.InputText, "input method: voice, text or both")
	cmd.Flags().StringVar(&recognizerURL, "recognizer", os.Getenv("MOCKMATE_RECOGNIZER_URL"), "websocket URL of a speech recognizer endpoint")
	return cmd
}

func newFeedbackCmd(serverURL *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback <interview-id>",
		Short: "Show the feedback report for a past interview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newGateway(*serverURL)
			report, err := client.Feedback(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			runner := app.NewRunner(client, nil, cmd.InOrStdin(), cmd.OutOrStdout())
			runner.RenderReport(report)
			return nil
		},
	}
	return cmd
}

func newHistoryCmd(serverURL *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List your past interviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newGateway(*serverURL)
			interviews, err := client.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(interviews) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No interviews yet. Start one with `mockmate run`.")
				return nil
			}
			for _, iv := range interviews {
				subject := iv.Role
				if subject == "" {
					subject = "custom role"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s  %-10s  d%d  %2dm  %s\n",
					iv.StartedAt.Format("2006-01-02 15:04"), iv.Status, iv.InterviewType,
					iv.Difficulty, iv.Duration, subject)
				fmt.Fprintf(cmd.OutOrStdout(), "    id: %s\n", iv.ID)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of interviews to list")
	return cmd
}
