package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
	ucSpecialty "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/specialty"
)

func rootCmd(open storeOpener) *cobra.Command {
	root := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Clinic scheduler administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(adminCmd(open))
	root.AddCommand(specialtyCmd(open))
	root.AddCommand(doctorCmd(open))
	root.AddCommand(userCmd(open))
	return root
}

func userFlags(cmd *cobra.Command) {
	cmd.Flags().String("username", "", "Login username")
	cmd.Flags().String("password", "", "Initial password")
	cmd.Flags().String("email", "", "E-mail")
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
}

func readNewUser(cmd *cobra.Command) ucAccount.NewUser {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	email, _ := cmd.Flags().GetString("email")
	first, _ := cmd.Flags().GetString("first-name")
	last, _ := cmd.Flags().GetString("last-name")
	return ucAccount.NewUser{
		Username:  username,
		Password:  password,
		Email:     email,
		FirstName: first,
		LastName:  last,
	}
}

// ======================================================
// ADMIN
// ======================================================

func adminCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{Use: "admin", Short: "Manage administrators"}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, hasher, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			u, err := ucAccount.NewRegister(s, hasher).Admin(cmd.Context(), readNewUser(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q created (id %d)\n", u.Username, u.ID)
			return nil
		},
	}
	userFlags(create)

	cmd.AddCommand(create)
	return cmd
}

// ======================================================
// SPECIALTY
// ======================================================

func specialtyCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{Use: "specialty", Short: "Manage specialties"}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a specialty",
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")

			s, _, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			spec, err := ucSpecialty.NewSpecialties(s).Create(cmd.Context(), nil, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "specialty %q created (id %d)\n", spec.Description, spec.ID)
			return nil
		},
	}
	create.Flags().String("description", "", "Specialty name")
	_ = create.MarkFlagRequired("description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List specialties",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			all, err := ucSpecialty.NewSpecialties(s).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, sp := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", sp.ID, sp.Description)
			}
			return nil
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}

// ======================================================
// DOCTOR
// ======================================================

func doctorCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{Use: "doctor", Short: "Manage doctors"}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a doctor account",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, _ := cmd.Flags().GetString("code")
			phone, _ := cmd.Flags().GetString("phone")
			specialtyID, _ := cmd.Flags().GetUint("specialty-id")

			s, hasher, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			u, err := ucAccount.NewRegister(s, hasher).Doctor(cmd.Context(), nil, ucAccount.RegisterDoctorInput{
				User:        readNewUser(cmd),
				Code:        code,
				Phone:       phone,
				SpecialtyID: specialtyID,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "doctor %q created (user id %d, doctor id %d)\n", u.Username, u.ID, u.Doctor.ID)
			return nil
		},
	}
	userFlags(create)
	create.Flags().String("code", "", "Professional code")
	create.Flags().String("phone", "", "Phone (digits only)")
	create.Flags().Uint("specialty-id", 0, "Specialty id")
	_ = create.MarkFlagRequired("code")
	_ = create.MarkFlagRequired("specialty-id")

	cmd.AddCommand(create)
	return cmd
}

// ======================================================
// USER
// ======================================================

func userCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage user accounts"}

	deactivate := &cobra.Command{
		Use:   "deactivate <username>",
		Short: "Block login and invalidate issued tokens for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := ucAccount.NewDeactivate(s).Execute(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %q deactivated\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(deactivate)
	return cmd
}
