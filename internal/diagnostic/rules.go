package diagnostic

// Rule describes one entry of the diagnostic catalog.
type Rule struct {
	ID       string
	Title    string
	Severity Severity
	// Template is a fmt format string rendered with the report arguments.
	Template string
	// Gating rules prevent code generation for the affected union.
	Gating bool
}

// Rule catalog. IDs are stable; never renumber.
var (
	RootNotAbstract = Rule{
		ID:       "UG001",
		Title:    "union root must be an interface",
		Severity: SeverityError,
		Template: "union root %s must be an interface type; a %s can be instantiated directly",
		Gating:   true,
	}
	RootNotSealed = Rule{
		ID:       "UG002",
		Title:    "union root must declare a case marker",
		Severity: SeverityError,
		Template: "union root %s must declare an unexported method without parameters or results to mark its cases",
		Gating:   true,
	}
	RootNotExtensible = Rule{
		ID:       "UG003",
		Title:    "union root must be open for generation",
		Severity: SeverityError,
		Template: "union root %s must be a package-level type declaration (%s) so generated code can extend it",
		Gating:   true,
	}
	RootGeneric = Rule{
		ID:       "UG004",
		Title:    "generic union roots are not supported",
		Severity: SeverityError,
		Template: "union root %s declares type parameters; generic unions are not supported",
		Gating:   true,
	}
	NoCases = Rule{
		ID:       "UG005",
		Title:    "union declares no cases",
		Severity: SeverityWarning,
		Template: "union %s declares no cases; no code is generated (declare types implementing %s())",
		Gating:   true,
	}
	CaseNotClosed = Rule{
		ID:       "UG006",
		Title:    "case type is open for extension",
		Severity: SeverityWarning,
		Template: "case %s of union %s is an interface type; new implementations would bypass exhaustive matching",
	}
	DuplicateCaseName = Rule{
		ID:       "UG007",
		Title:    "duplicate case name",
		Severity: SeverityError,
		Template: "case name %s is declared more than once in union %s; only the first declaration (%s) is used",
	}
	RootHasInstanceState = Rule{
		ID:       "UG008",
		Title:    "union root carries extra state",
		Severity: SeverityWarning,
		Template: "union root %s declares %s beyond its case marker; keep shared behaviour off the case selector",
	}
	PreferValueSemantics = Rule{
		ID:       "UG009",
		Title:    "prefer value receivers for case markers",
		Severity: SeverityInfo,
		Template: "union %s: cases %s mark themselves with pointer receivers; prefer value receivers so cases compare by value",
	}
	// CaseOutsideNesting is catalogued for completeness. No analysis path
	// reports it.
	CaseOutsideNesting = Rule{
		ID:       "UG010",
		Title:    "case declared outside its union",
		Severity: SeverityWarning,
		Template: "case %s is declared outside union %s",
	}
	GenerationFailed = Rule{
		ID:       "UG011",
		Title:    "generation failed",
		Severity: SeverityError,
		Template: "generation failed for union %s: %v",
	}
	InvalidMarkerOption = Rule{
		ID:       "UG012",
		Title:    "invalid marker option",
		Severity: SeverityWarning,
		Template: "marker on %s: %s",
	}
	IdentifierCollision = Rule{
		ID:       "UG013",
		Title:    "generated identifier collides with a declaration",
		Severity: SeverityError,
		Template: "generated identifier %s for union %s collides with an existing declaration at %s",
		Gating:   true,
	}
	GenericCaseSkipped = Rule{
		ID:       "UG014",
		Title:    "generic case skipped",
		Severity: SeverityWarning,
		Template: "case %s of union %s declares type parameters and cannot be matched; it is skipped",
	}
)

// Catalog lists every rule in ID order.
var Catalog = []Rule{
	RootNotAbstract,
	RootNotSealed,
	RootNotExtensible,
	RootGeneric,
	NoCases,
	CaseNotClosed,
	DuplicateCaseName,
	RootHasInstanceState,
	PreferValueSemantics,
	CaseOutsideNesting,
	GenerationFailed,
	InvalidMarkerOption,
	IdentifierCollision,
	GenericCaseSkipped,
}

// Lookup returns the catalog rule with the given ID.
func Lookup(id string) (Rule, bool) {
	for _, r := range Catalog {
		if r.ID == id {
			return r, true
		}
	}

	return Rule{}, false
}
