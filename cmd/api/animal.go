package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vet-clinic-records/internal/domain/animals"
)

const dateLayout = "2006-01-02"

func newAnimalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animal",
		Short: "Read and register animals directly against the configured database",
	}
	cmd.AddCommand(newAnimalGetCmd(a))
	cmd.AddCommand(newAnimalCreateCmd(a))
	return cmd
}

func newAnimalGetCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an animal with its owner and administered procedures",
		Long: `Get muestra el animal, su dueño y los procedimientos aplicados.

Example:
  api animal get 12
  api animal get 12 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid animal id %q", args[0])
			}

			repo, closeRepo, err := openRepository(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer func() { _ = closeRepo() }()

			agg, err := animals.NewService(repo, a.log).Get(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, animals.ErrNotFound) {
					return fmt.Errorf("animal %d not found", id)
				}
				return fmt.Errorf("get animal: %w", err)
			}

			if jsonOutput {
				return printAnimalJSON(cmd.OutOrStdout(), agg)
			}
			printAnimalDetails(cmd.OutOrStdout(), agg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print as JSON")
	return cmd
}

func newAnimalCreateCmd(a *app) *cobra.Command {
	var (
		name       string
		admission  string
		ownerID    int64
		classID    int64
		procedures []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an animal together with its administered procedures",
		Long: `Create valida el dueño y cada procedimiento y registra todo en una transacción.

Example:
  api animal create --name Rex --admission-date 2024-01-10 --owner 1
  api animal create --name Rex --admission-date 2024-01-10 --owner 1 --procedure 3:2024-01-10 --procedure 4:2024-01-12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adm, err := time.Parse(dateLayout, admission)
			if err != nil {
				return errors.New("admission-date must be YYYY-MM-DD")
			}
			procs, err := parseProcedureFlags(procedures)
			if err != nil {
				return err
			}

			repo, closeRepo, err := openRepository(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer func() { _ = closeRepo() }()

			id, err := animals.NewService(repo, a.log).Create(cmd.Context(), animals.NewAnimal{
				Name:          name,
				AdmissionDate: adm,
				OwnerID:       ownerID,
				AnimalClassID: classID,
				Procedures:    procs,
			})
			if err != nil {
				return fmt.Errorf("create animal: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created animal: %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "animal name (required)")
	cmd.Flags().StringVar(&admission, "admission-date", "", "admission date YYYY-MM-DD (required)")
	cmd.Flags().Int64Var(&ownerID, "owner", 0, "owner id (required)")
	cmd.Flags().Int64Var(&classID, "class", animals.DefaultAnimalClassID, "animal class id")
	cmd.Flags().StringArrayVar(&procedures, "procedure", nil, "administered procedure as ID:YYYY-MM-DD (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("admission-date")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

// parseProcedureFlags convierte "ID:YYYY-MM-DD" en ProcedureWithDate, respetando el orden.
func parseProcedureFlags(values []string) ([]animals.ProcedureWithDate, error) {
	out := make([]animals.ProcedureWithDate, 0, len(values))
	for _, v := range values {
		idPart, datePart, ok := strings.Cut(strings.TrimSpace(v), ":")
		if !ok {
			return nil, fmt.Errorf("procedure %q: expected ID:YYYY-MM-DD", v)
		}
		id, err := strconv.ParseInt(idPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("procedure %q: invalid id", v)
		}
		d, err := time.Parse(dateLayout, datePart)
		if err != nil {
			return nil, fmt.Errorf("procedure %q: date must be YYYY-MM-DD", v)
		}
		out = append(out, animals.ProcedureWithDate{ProcedureID: id, Date: d})
	}
	return out, nil
}

func printAnimalDetails(w io.Writer, a animals.AnimalAggregate) {
	fmt.Fprintf(w, "ID:        %d\n", a.ID)
	fmt.Fprintf(w, "Name:      %s\n", a.Name)
	fmt.Fprintf(w, "Admitted:  %s\n", formatDate(a.AdmissionDate))
	fmt.Fprintf(w, "Owner:     %s %s (%d)\n", a.Owner.FirstName, a.Owner.LastName, a.Owner.ID)
	if len(a.Procedures) == 0 {
		fmt.Fprintf(w, "Procedures: none\n")
		return
	}
	fmt.Fprintf(w, "Procedures:\n")
	for _, p := range a.Procedures {
		fmt.Fprintf(w, "  %s  %s  %s\n", p.Date.Format(dateLayout), p.Name, p.Description)
	}
}

func printAnimalJSON(w io.Writer, a animals.AnimalAggregate) error {
	type procedure struct {
		Date        string `json:"date"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	type owner struct {
		ID        int64  `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	view := struct {
		ID            int64       `json:"id"`
		Name          string      `json:"name"`
		AdmissionDate string      `json:"admission_date"`
		Owner         owner       `json:"owner"`
		Procedures    []procedure `json:"procedures"`
	}{
		ID:            a.ID,
		Name:          a.Name,
		AdmissionDate: a.AdmissionDate.Format(dateLayout),
		Owner:         owner{ID: a.Owner.ID, FirstName: a.Owner.FirstName, LastName: a.Owner.LastName},
		Procedures:    make([]procedure, 0, len(a.Procedures)),
	}
	for _, p := range a.Procedures {
		view.Procedures = append(view.Procedures, procedure{Date: p.Date.Format(dateLayout), Name: p.Name, Description: p.Description})
	}

	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal animal: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// formatDate muestra "unknown" para el centinela de fecha nula.
func formatDate(t time.Time) string {
	if t.Equal(animals.MinAdmissionDate) {
		return "unknown"
	}
	return t.Format(dateLayout)
}
