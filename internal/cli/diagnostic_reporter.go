package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/toyz/dogen/internal/models"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// SetOutput redirects the reporter's regular and error output
func (r *DiagnosticReporter) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
	for _, s := range suggestions {
		fmt.Fprintf(r.errOut, "   - %s\n", s)
	}
}

// ReportError provides comprehensive error reporting. Aggregated errors are
// reported one by one.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(r.errOut, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.errOut, "=============================\n\n")

	errs := []error{err}
	var merr *multierror.Error
	if stderrors.As(err, &merr) && len(merr.Errors) > 0 {
		errs = merr.Errors
		fmt.Fprintf(r.errOut, "%d problems found\n\n", len(errs))
	}

	for i, e := range errs {
		if len(errs) > 1 {
			fmt.Fprintf(r.errOut, "[%d/%d]\n", i+1, len(errs))
		}
		if genErr := r.findGeneratorError(e); genErr != nil {
			r.reportGeneratorError(genErr)
		} else {
			r.reportGeneratorError(models.NewGeneratorError(e, models.ErrorTypeGeneration))
		}
	}

	r.printFurtherHelp()
	fmt.Fprintf(r.errOut, "\n")
}

// reportGeneratorError reports a GeneratorError with full context and suggestions
func (r *DiagnosticReporter) reportGeneratorError(genErr *models.GeneratorError) {
	r.printErrorHeader(genErr)

	fmt.Fprintf(r.errOut, "Message: %s\n\n", genErr.Message)

	if r.verbose && genErr.Cause != nil && genErr.Cause.Error() != genErr.Message {
		fmt.Fprintf(r.errOut, "Underlying cause: %s\n\n", genErr.Cause.Error())
	}

	if genErr.File != "" {
		if genErr.Line > 0 {
			fmt.Fprintf(r.errOut, "Location: %s:%d\n\n", genErr.File, genErr.Line)
		} else {
			fmt.Fprintf(r.errOut, "File: %s\n\n", genErr.File)
		}
	}

	if len(genErr.Context) > 0 {
		r.printContext(genErr.Context)
	}

	if len(genErr.Suggestions) > 0 {
		r.printSuggestions(genErr.Suggestions)
	}

	r.printAdditionalHelp(genErr.Type)

	if r.verbose {
		r.printVerboseDebuggingInfo(genErr)
	}
}

// printErrorHeader prints a formatted error header based on error type
func (r *DiagnosticReporter) printErrorHeader(genErr *models.GeneratorError) {
	errorTypeStr := errorTypeName(genErr.Type)
	fmt.Fprintf(r.errOut, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

func errorTypeName(t models.ErrorType) string {
	switch t {
	case models.ErrorTypeAnnotationSyntax:
		return "Annotation Syntax Error"
	case models.ErrorTypeValidation:
		return "Validation Error"
	case models.ErrorTypeNamingConvention:
		return "Naming Convention Error"
	case models.ErrorTypeTypeResolution:
		return "Type Resolution Error"
	case models.ErrorTypeGeneration:
		return "Code Generation Error"
	case models.ErrorTypeFileSystem:
		return "File System Error"
	case models.ErrorTypeConfiguration:
		return "Configuration Error"
	default:
		return "Unknown Error"
	}
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.errOut, "Context:\n")

	importantKeys := []string{"type_name", "method_name", "reason", "annotation"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	rest := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "type_name":
		return "Type"
	case "method_name":
		return "Method"
	case "config_type":
		return "Config"
	default:
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.errOut, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.errOut, "\n")
}

// printAdditionalHelp prints additional help based on error type
func (r *DiagnosticReporter) printAdditionalHelp(errorType models.ErrorType) {
	switch errorType {
	case models.ErrorTypeAnnotationSyntax:
		fmt.Fprintf(r.errOut, "Annotation Syntax Help:\n")
		fmt.Fprintf(r.errOut, "  - Annotations must start with //dogen::\n")
		fmt.Fprintf(r.errOut, "  - Flags are written -Name or -Name=value\n")
		fmt.Fprintf(r.errOut, "  - dataobject goes on a type, module on the package clause\n\n")

	case models.ErrorTypeValidation:
		fmt.Fprintf(r.errOut, "Data Object Requirements:\n")
		fmt.Fprintf(r.errOut, "  - Data objects are structs or interfaces without type parameters\n")
		fmt.Fprintf(r.errOut, "  - Every data object belongs to a module\n")
		fmt.Fprintf(r.errOut, "  - Concrete structs need a default, a copy and a JSON constructor\n\n")

	case models.ErrorTypeNamingConvention:
		fmt.Fprintf(r.errOut, "Naming Conventions:\n")
		fmt.Fprintf(r.errOut, "  - Adders take the singular name: AddItem, not AddItems\n")
		fmt.Fprintf(r.errOut, "  - Mark helper methods with //dogen::ignore to skip them\n\n")
	}
}

func (r *DiagnosticReporter) printFurtherHelp() {
	fmt.Fprintf(r.errOut, "For more help:\n")
	fmt.Fprintf(r.errOut, "  - Run with --verbose for more detailed output\n")
	fmt.Fprintf(r.errOut, "  - Run 'dogen describe' to inspect the models that were built\n")
}

// findGeneratorError searches for a GeneratorError in wrapped errors
func (r *DiagnosticReporter) findGeneratorError(err error) *models.GeneratorError {
	var genErr *models.GeneratorError
	if stderrors.As(err, &genErr) {
		return genErr
	}
	return nil
}

// printVerboseDebuggingInfo prints additional debugging information in verbose mode
func (r *DiagnosticReporter) printVerboseDebuggingInfo(genErr *models.GeneratorError) {
	fmt.Fprintf(r.errOut, "Verbose Debug Information:\n")
	fmt.Fprintf(r.errOut, "  Error Type Code: %d\n", int(genErr.Type))

	if genErr.Cause != nil {
		fmt.Fprintf(r.errOut, "  Error Chain:\n")
		err := genErr.Cause
		level := 1
		for err != nil {
			fmt.Fprintf(r.errOut, "    %d. %s\n", level, err.Error())
			err = stderrors.Unwrap(err)
			level++
		}
	}

	fmt.Fprintf(r.errOut, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.errOut, "[DEBUG] "+format+"\n", args...)
	}
}

// DebugSection prints a debug section header when verbose mode is enabled
func (r *DiagnosticReporter) DebugSection(section string) {
	if r.verbose {
		fmt.Fprintf(r.errOut, "[DEBUG] === %s ===\n", section)
	}
}

// ReportSuccess reports successful generation with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	fmt.Fprintf(r.out, "\nCode Generation Completed Successfully!\n")
	fmt.Fprintf(r.out, "=======================================\n\n")

	if summary.PackagesScanned > 0 {
		fmt.Fprintf(r.out, "Scanned %d packages\n", summary.PackagesScanned)
	}
	if summary.ModelsBuilt > 0 {
		fmt.Fprintf(r.out, "Built %d data object models\n", summary.ModelsBuilt)
	}
	if summary.PropertiesFound > 0 {
		fmt.Fprintf(r.out, "Inferred %d properties\n", summary.PropertiesFound)
	}

	if len(summary.GeneratedFiles) > 0 {
		verb := "Generated"
		if summary.DryRun {
			verb = "Would generate"
		}
		fmt.Fprintf(r.out, "\n%s files:\n", verb)
		for _, file := range summary.GeneratedFiles {
			fmt.Fprintf(r.out, "  - %s\n", file)
		}
	}
	fmt.Fprintf(r.out, "\n")
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	PackagesScanned int
	ModelsBuilt     int
	PropertiesFound int
	Failures        int
	DryRun          bool
	GeneratedFiles  []string
}
