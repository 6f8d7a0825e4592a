package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resumekit/internal/app"
	"resumekit/internal/state"
)

type appRunner interface {
	SetVerbose(verbose bool)
	RunProfile(opts app.ProfileOptions) error
	RunValidate(path string) (int, error)
	RunSubmit(opts app.SubmitOptions) (int, error)
	RunTemplate(out string) (int, error)
	RunAuthSetToken(token string) (int, error)
	RunAuthClear() (int, error)
	RunAuthStatus() (int, error)
	RunConfigShow() (int, error)
	RunConfigSet(key, value string) (int, error)
}

type runDeps struct {
	userHomeDir func() (string, error)
	newApp      func(paths state.Paths, stdout io.Writer, stderr io.Writer) appRunner
}

type runtimeState struct {
	stdout io.Writer
	stderr io.Writer
	quiet  bool

	deps runDeps
	app  appRunner
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func defaultRunDeps() runDeps {
	return runDeps{
		userHomeDir: os.UserHomeDir,
		newApp: func(paths state.Paths, stdout io.Writer, stderr io.Writer) appRunner {
			return app.New(paths, stdout, stderr)
		},
	}
}

func Run(args []string, stdout io.Writer, stderr io.Writer) int {
	return runWithDeps(args, stdout, stderr, defaultRunDeps())
}

func NewRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	runtime := &runtimeState{
		stdout: stdout,
		stderr: stderr,
		deps:   defaultRunDeps(),
	}
	cmd := newRootCommand(runtime)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

func runWithDeps(args []string, stdout io.Writer, stderr io.Writer, deps runDeps) int {
	runtime := &runtimeState{
		stdout: stdout,
		stderr: stderr,
		deps:   deps,
	}

	cmd := newRootCommand(runtime)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var codedErr *exitError
	if errors.As(err, &codedErr) {
		if codedErr.err != nil {
			fmt.Fprintln(stderr, codedErr.err)
		}
		if codedErr.code == 0 {
			return 2
		}
		return codedErr.code
	}

	fmt.Fprintln(stderr, err)
	return 2
}

func (r *runtimeState) appRunner() (appRunner, error) {
	if r.app != nil {
		return r.app, nil
	}

	home, err := r.deps.userHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home: %w", err)
	}

	a := r.deps.newApp(state.NewPaths(home), r.stdout, r.stderr)
	a.SetVerbose(!r.quiet)
	r.app = a
	return r.app, nil
}

func newRootCommand(runtime *runtimeState) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "resumekit",
		Short:         "Build and submit your resume profile.",
		Long:          "resumekit walks you through the profile wizard and submits the result to the resume service.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cmd.Help(); err != nil {
				return withExitCode(2, err)
			}
			return withExitCode(2, errors.New("a command is required"))
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(2, err)
	})

	cmd.PersistentFlags().BoolVarP(&runtime.quiet, "quiet", "q", false, "Suppress verbose resumekit logs.")

	cmd.AddCommand(
		newProfileCommand(runtime),
		newAuthCommand(runtime),
		newConfigCommand(runtime),
	)
	cmd.AddCommand(newCompletionCommand(runtime, cmd))

	return cmd
}

func withExitCode(code int, err error) error {
	if err == nil {
		if code == 0 {
			return nil
		}
		return &exitError{code: code}
	}
	if code == 0 {
		code = 2
	}
	return &exitError{code: code, err: err}
}

func newProfileCommand(runtime *runtimeState) *cobra.Command {
	var from string
	var saveTo string

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Launch the interactive profile wizard.",
		Long: "Walk through basic details, education, experience, skills, projects, certifications and achievements,\n" +
			"then submit the profile. Use --from to start from a draft file and --save to keep unsubmitted work.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			err = runner.RunProfile(app.ProfileOptions{From: from, SaveTo: saveTo})
			return withExitCode(0, err)
		},
	}
	profileCmd.Flags().StringVar(&from, "from", "", "Seed the wizard with a draft YAML file.")
	profileCmd.Flags().StringVar(&saveTo, "save", "", "Write the draft to this file when leaving without submitting.")

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a draft file without submitting it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			code, err := runner.RunValidate(args[0])
			return withExitCode(code, err)
		},
	}

	var yes bool
	submitCmd := &cobra.Command{
		Use:   "submit <file>",
		Short: "Validate and submit a draft file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			code, err := runner.RunSubmit(app.SubmitOptions{Path: args[0], Yes: yes})
			return withExitCode(code, err)
		},
	}
	submitCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Submit without asking for confirmation.")

	var out string
	templateCmd := &cobra.Command{
		Use:   "template",
		Short: "Print an empty draft file.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			code, err := runner.RunTemplate(out)
			return withExitCode(code, err)
		},
	}
	templateCmd.Flags().StringVarP(&out, "out", "o", "", "Write the template to a file instead of stdout.")

	profileCmd.AddCommand(validateCmd, submitCmd, templateCmd)
	return profileCmd
}

func newAuthCommand(runtime *runtimeState) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored session token.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cmd.Help(); err != nil {
				return withExitCode(2, err)
			}
			return withExitCode(2, errors.New("auth subcommand is required"))
		},
	}

	tokenCmd := &cobra.Command{
		Use:   "token <token>",
		Short: "Store a session token issued by the resume service.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			code, err := runner.RunAuthSetToken(args[0])
			return withExitCode(code, err)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored session token.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			code, err := runner.RunAuthClear()
			return withExitCode(code, err)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether a session token is available.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			code, err := runner.RunAuthStatus()
			return withExitCode(code, err)
		},
	}

	authCmd.AddCommand(tokenCmd, clearCmd, statusCmd)
	return authCmd
}

func newConfigCommand(runtime *runtimeState) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit resumekit configuration.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cmd.Help(); err != nil {
				return withExitCode(2, err)
			}
			return withExitCode(2, errors.New("config subcommand is required"))
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after environment overrides.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			code, err := runner.RunConfigShow()
			return withExitCode(code, err)
		},
	}

	setCmd := &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Write one setting to config.yaml.",
		Long:      "Write one setting to config.yaml. Keys: " + strings.Join(state.ConfigKeys(), ", ") + ".",
		Args:      cobra.ExactArgs(2),
		ValidArgs: state.ConfigKeys(),
		RunE: func(_ *cobra.Command, args []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			code, err := runner.RunConfigSet(args[0], args[1])
			return withExitCode(code, err)
		},
	}

	configCmd.AddCommand(showCmd, setCmd)
	return configCmd
}

func newCompletionCommand(runtime *runtimeState, root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts.",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(_ *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = root.GenBashCompletionV2(runtime.stdout, true)
			case "zsh":
				err = root.GenZshCompletion(runtime.stdout)
			case "fish":
				err = root.GenFishCompletion(runtime.stdout, true)
			case "powershell":
				err = root.GenPowerShellCompletionWithDesc(runtime.stdout)
			default:
				err = fmt.Errorf("unsupported shell %q", args[0])
			}
			return withExitCode(0, err)
		},
	}
}
