// Package app is the terminal front end for an interview session. It wires
// the session controller, its timer, the gateway client, and optional speech
// capture into an interactive loop over stdin/stdout.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/gateway"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/session"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/speech"
)

// Runner drives one interview session end to end.
type Runner struct {
	backend session.Backend
	engine  speech.Engine
	in      io.Reader
	out     io.Writer
}

// NewRunner builds a runner. The speech engine may be nil; the session then
// accepts typed answers only.
func NewRunner(backend session.Backend, engine speech.Engine, in io.Reader, out io.Writer) *Runner {
	return &Runner{backend: backend, engine: engine, in: in, out: out}
}

// Run conducts a full interview with the given configuration and returns the
// completed session record.
func (r *Runner) Run(ctx context.Context, cfg session.Config) (*session.Record, error) {
	controller := session.NewController(r.backend)
	if err := controller.Start(ctx, cfg); err != nil {
		return nil, err
	}
	timer := session.StartTimer(controller, nil)
	defer timer.Stop()

	var capture *speech.Capture
	if r.engine != nil && cfg.InputMethod != session.InputText {
		capture = speech.NewCapture(r.engine, controller.AppendFinalTranscript,
			speech.WithInterim(func(text string) {
				fmt.Fprintf(r.out, "  … %s\r", text)
			}),
			speech.WithErrorHandler(func(err error) {
				fmt.Fprintf(r.out, "voice input unavailable (%v); type your answer instead\n", err)
			}),
		)
	}

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		select {
		case <-ctx.Done():
			_ = controller.End(context.WithoutCancel(ctx))
			return controller.Record(), ctx.Err()
		case <-controller.Done():
			return controller.Record(), nil
		default:
		}

		question := controller.CurrentQuestion()
		if question == nil {
			// Question fetch failed earlier; offer a manual retry.
			fmt.Fprintln(r.out, "No question available. Press enter to retry, or type /end to finish.")
			if !scanner.Scan() {
				_ = controller.End(ctx)
				return controller.Record(), scanner.Err()
			}
			if strings.TrimSpace(scanner.Text()) == "/end" {
				_ = controller.End(ctx)
				return controller.Record(), nil
			}
			if err := controller.RetryQuestion(ctx); err != nil {
				fmt.Fprintf(r.out, "still unavailable: %v\n", err)
			}
			continue
		}

		fmt.Fprintf(r.out, "\nQuestion %d of %d (%s remaining)\n%s\n",
			controller.QuestionNumber(), controller.TotalQuestions(),
			formatSeconds(controller.TimeRemaining()), question.Text)

		answer, err := r.collectAnswer(ctx, controller, capture, scanner)
		if err != nil {
			_ = controller.End(context.WithoutCancel(ctx))
			return controller.Record(), err
		}
		if answer == "/end" {
			if err := controller.End(ctx); err != nil {
				var endErr *session.SessionEndError
				if !errors.As(err, &endErr) {
					return controller.Record(), err
				}
				fmt.Fprintf(r.out, "warning: backend not notified of session end: %v\n", endErr)
			}
			return controller.Record(), nil
		}

		if err := controller.SubmitAnswer(ctx, answer); err != nil {
			switch {
			case errors.Is(err, session.ErrEmptyAnswer):
				fmt.Fprintln(r.out, "Answer must not be empty.")
			case errors.Is(err, session.ErrSessionNotActive):
				return controller.Record(), nil
			default:
				fmt.Fprintf(r.out, "could not submit answer: %v\n", err)
			}
		}
	}
}

// collectAnswer reads one answer, from voice capture when available plus the
// keyboard, returning the trimmed text or the /end command.
func (r *Runner) collectAnswer(ctx context.Context, controller *session.Controller, capture *speech.Capture, scanner *bufio.Scanner) (string, error) {
	if capture != nil && capture.Supported() {
		if err := capture.StartListening(ctx); err == nil {
			fmt.Fprintln(r.out, "(listening — speak your answer, then press enter; or just type)")
		}
		defer capture.StopListening()
	}

	fmt.Fprint(r.out, "> ")
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "/end", nil
	}
	typed := strings.TrimSpace(scanner.Text())
	if typed == "/end" {
		return "/end", nil
	}

	if capture != nil {
		capture.StopListening()
		capture.Wait()
	}

	// Voice fragments accumulate in the pending buffer; typed text wins when
	// both are present.
	if typed != "" {
		return typed, nil
	}
	if pending := controller.Pending(); pending != "" {
		return pending, nil
	}
	return "", nil
}

// RenderReport prints the scored feedback report.
func (r *Runner) RenderReport(report *gateway.FeedbackReport) {
	fmt.Fprintf(r.out, "\n===== Interview Feedback =====\n")
	fmt.Fprintf(r.out, "Overall:       %.0f\n", report.OverallScore)
	fmt.Fprintf(r.out, "Technical:     %.0f\n", report.TechnicalScore)
	fmt.Fprintf(r.out, "Communication: %.0f\n", report.CommunicationScore)
	fmt.Fprintf(r.out, "Confidence:    %.0f\n", report.ConfidenceScore)

	if len(report.Strengths) > 0 {
		fmt.Fprintln(r.out, "\nStrengths:")
		for _, s := range report.Strengths {
			fmt.Fprintf(r.out, "  + %s\n", s)
		}
	}
	if len(report.Improvements) > 0 {
		fmt.Fprintln(r.out, "\nAreas to improve:")
		for _, s := range report.Improvements {
			fmt.Fprintf(r.out, "  - %s\n", s)
		}
	}
	if report.DetailedFeedback != "" {
		fmt.Fprintf(r.out, "\n%s\n", report.DetailedFeedback)
	}
	if len(report.QuestionAnalysis) > 0 {
		fmt.Fprintln(r.out, "\nPer question:")
		for _, qa := range report.QuestionAnalysis {
			fmt.Fprintf(r.out, "  [%.0f] %s\n", qa.Score, qa.Question)
		}
	}
}

func formatSeconds(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
