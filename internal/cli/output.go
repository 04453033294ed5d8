package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/api/dto"
)

// OutputFormatter writes command results as text or JSON
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

func newFormatter(opts *RootOptions, w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: w}
}

// JSON writes v as indented JSON
func (f *OutputFormatter) JSON(v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Transaction writes one transaction
func (f *OutputFormatter) Transaction(txn *entity.Transaction) error {
	resp := dto.NewTransactionResponse(txn)
	if f.Format == "json" {
		return f.JSON(resp)
	}

	fmt.Fprintf(f.Writer, "ID:         %s\n", resp.ID)
	fmt.Fprintf(f.Writer, "Reference:  %s\n", resp.Reference)
	fmt.Fprintf(f.Writer, "Amount:     %s %s\n", resp.Amount.String(), resp.Currency)
	fmt.Fprintf(f.Writer, "Status:     %s\n", resp.Status)
	if resp.FailureReason != "" {
		fmt.Fprintf(f.Writer, "Reason:     %s\n", resp.FailureReason)
	}
	fmt.Fprintf(f.Writer, "Created:    %s\n", resp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(f.Writer, "Updated:    %s\n", resp.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(f.Writer, "Version:    %d\n", txn.Version)
	return nil
}

// Message writes a status line, or {"message": ...} in JSON mode
func (f *OutputFormatter) Message(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if f.Format == "json" {
		return f.JSON(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(f.Writer, msg)
	return err
}
