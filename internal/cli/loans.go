package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"loanlink/internal/api"
)

func newLoansCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "Browse loan products",
	}

	var featured bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List loan products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			loans, err := a.client.Loans(cmd.Context(), api.LoanFilter{ShowOnHome: featured})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tRATE\tLIMIT")
			for _, loan := range loans {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f%%\t%.0f\n",
					loan.ID, loan.Title, loan.Category, loan.InterestRate, loan.MaxLoanLimit)
			}
			return w.Flush()
		},
	}
	list.Flags().BoolVar(&featured, "featured", false, "only products featured on the home page")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one loan product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			loan, err := a.client.Loan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s\nrate %.2f%%, up to %.0f, plans %v\n",
				loan.Title, loan.Category, loan.Description, loan.InterestRate, loan.MaxLoanLimit, loan.EMIPlans)
			return nil
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newApplyCmd(a *app) *cobra.Command {
	var input api.ApplicationInput
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit a loan application",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			loan, err := a.client.Loan(cmd.Context(), input.LoanID)
			if err != nil {
				return err
			}
			input.LoanTitle = loan.Title
			input.InterestRate = loan.InterestRate
			app, err := a.client.SubmitApplication(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "application %s submitted, status %s\n", app.ID, app.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.LoanID, "loan", "", "loan product id")
	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&input.ContactNumber, "contact", "", "contact number")
	cmd.Flags().StringVar(&input.NationalID, "national-id", "", "national id")
	cmd.Flags().StringVar(&input.Address, "address", "", "address")
	cmd.Flags().StringVar(&input.IncomeSource, "income-source", "", "income source")
	cmd.Flags().Float64Var(&input.MonthlyIncome, "monthly-income", 0, "monthly income")
	cmd.Flags().Float64Var(&input.LoanAmount, "amount", 0, "requested loan amount")
	cmd.Flags().StringVar(&input.ReasonForLoan, "reason", "", "reason for the loan")
	cmd.Flags().StringVar(&input.ExtraNotes, "notes", "", "extra notes")
	_ = cmd.MarkFlagRequired("loan")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newApplicationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "Work with loan applications",
	}

	var status string
	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List your applications (or all, for managers)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			var apps []api.Application
			var err error
			if all {
				apps, err = a.client.Applications(cmd.Context(), api.ApplicationFilter{Status: status})
			} else {
				apps, err = a.client.MyApplications(cmd.Context())
			}
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLOAN\tAMOUNT\tSTATUS\tFEE")
			for _, app := range apps {
				fmt.Fprintf(w, "%s\t%s\t%.0f\t%s\t%s\n",
					app.ID, app.LoanTitle, app.LoanAmount, app.Status, app.ApplicationFeeStatus)
			}
			return w.Flush()
		},
	}
	list.Flags().BoolVar(&all, "all", false, "list every application (manager role)")
	list.Flags().StringVar(&status, "status", "", "filter by status with --all")

	approve := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Approve or reject an application (manager role)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			if err := a.client.UpdateApplicationStatus(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "application %s is now %s\n", args[0], args[1])
			return nil
		},
	}

	withdraw := &cobra.Command{
		Use:   "withdraw <id>",
		Short: "Withdraw a pending application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			if err := a.client.DeleteApplication(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "application %s withdrawn\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, approve, withdraw)
	return cmd
}

func newRepayCmd(a *app) *cobra.Command {
	var amount float64
	cmd := &cobra.Command{
		Use:   "repay <application-id>",
		Short: "Pay an installment against an approved application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			intent, err := a.client.CreateRepaymentIntent(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}
			if err := a.client.ConfirmPayment(cmd.Context(), intent.PaymentIntentID); err != nil {
				return err
			}
			rep, err := a.client.RecordRepayment(cmd.Context(), args[0], amount, intent.PaymentIntentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "repayment %s of %.2f recorded (%s)\n", rep.ID, rep.Amount, rep.Status)
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 0, "installment amount")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newContactCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Contact the LoanLink team",
	}

	var input api.ContactInput
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a message through the contact form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Works without a session; fill in the sender from it if present.
			if user, _ := a.manager.CheckAuth(cmd.Context()); user != nil {
				if input.Name == "" {
					input.Name = user.Name
				}
				if input.Email == "" {
					input.Email = user.Email
				}
			}
			msg, err := a.client.SendContactMessage(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "message %s sent\n", msg.ID)
			return nil
		},
	}
	send.Flags().StringVar(&input.Name, "name", "", "your name")
	send.Flags().StringVar(&input.Email, "email", "", "your email")
	send.Flags().StringVar(&input.Subject, "subject", "", "subject")
	send.Flags().StringVar(&input.Message, "message", "", "message body")
	_ = send.MarkFlagRequired("message")

	mine := &cobra.Command{
		Use:   "list",
		Short: "List your submitted messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			msgs, err := a.client.MyContactMessages(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSUBJECT\tSTATUS")
			for _, msg := range msgs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", msg.ID, msg.Subject, msg.Status)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(send, mine)
	return cmd
}
