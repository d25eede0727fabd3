package service

// Term groups of the contract lexicon. These label contractual subject matter
// and are distinct from the scoring categories in valueobject: a group tells
// you what kind of clause matched, a category tells you which weight bucket a
// supplier score feeds.
const (
	TermGroupFinancial   = "Financial"
	TermGroupLegal       = "Legal"
	TermGroupCompliance  = "Compliance"
	TermGroupOperational = "Operational"
	TermGroupPricing     = "Pricing"
	TermGroupCompetitive = "Competitive"
	TermGroupStrategic   = "Strategic"
)

// ContractTerm is one entry of the contract risk lexicon: a standard
// contractual clause, the phrases that indicate it, and its risk to each side
// of the deal on a 1-10 scale.
type ContractTerm struct {
	Name        string
	Description string
	Group       string
	RiskSeller  int
	RiskBuyer   int
	Rationale   string
	Phrases     []string
}

// Lexicon returns the contract term risk matrix. Callers must not mutate the
// returned slice.
func Lexicon() []ContractTerm {
	return contractLexicon
}

var contractLexicon = []ContractTerm{
	// Financial terms.
	{
		Name:        "Payment Terms & Invoicing",
		Description: "Defines when and how payments are made, including milestones and due dates",
		Group:       TermGroupFinancial,
		RiskSeller:  6,
		RiskBuyer:   8,
		Rationale:   "Payment timing affects buyer cashflow; seller depends on timely payment",
		Phrases:     []string{"invoice", "payment", "due", "net 30", "net 60", "payment terms", "billing"},
	},
	{
		Name:        "Late Payment & Remedies",
		Description: "Penalties or interest for late payments; suspension or termination rights",
		Group:       TermGroupFinancial,
		RiskSeller:  5,
		RiskBuyer:   7,
		Rationale:   "Late-payment penalties protect seller cashflow; buyer exposure to penalties modest",
		Phrases:     []string{"late fee", "interest", "overdue", "default on payment", "suspension for non-payment"},
	},
	{
		Name:        "Price Adjustment / Escalation",
		Description: "Mechanisms for cost changes, inflation adjustments, or indexation",
		Group:       TermGroupPricing,
		RiskSeller:  4,
		RiskBuyer:   7,
		Rationale:   "Pricing escalation more material to seller margin; buyer prefers fixed pricing",
		Phrases:     []string{"price increase", "escalation", "CPI", "indexation", "adjustment"},
	},
	{
		Name:        "Taxes, Tariffs, & Duties",
		Description: "Responsibility for VAT, sales tax, and other government charges",
		Group:       TermGroupFinancial,
		RiskSeller:  5,
		RiskBuyer:   6,
		Rationale:   "Allocation of taxes affects both; often buyer bears sales tax",
		Phrases:     []string{"tax", "VAT", "sales tax", "duties", "withholding tax"},
	},
	{
		Name:        "Currency & Exchange Rate",
		Description: "Determines currency of payment and risk of exchange rate changes",
		Group:       TermGroupFinancial,
		RiskSeller:  3,
		RiskBuyer:   6,
		Rationale:   "Important for cross-border deals (seller exposed to FX if not hedged)",
		Phrases:     []string{"currency", "exchange rate", "FX", "convert", "USD", "EUR"},
	},
	{
		Name:        "Set-off & Withholding",
		Description: "Buyer's right to withhold or offset payments against other obligations",
		Group:       TermGroupFinancial,
		RiskSeller:  7,
		RiskBuyer:   4,
		Rationale:   "Buyer's right to set-off protects buyer; seller faces collection risk",
		Phrases:     []string{"set-off", "withhold", "offset", "deduction"},
	},
	{
		Name:        "Refunds & Credits",
		Description: "Conditions for repayment or credit if goods/services fail or terminate early",
		Group:       TermGroupFinancial,
		RiskSeller:  6,
		RiskBuyer:   7,
		Rationale:   "Refund mechanics affect seller liability; buyer relies on refunds for failures",
		Phrases:     []string{"refund", "credit", "prorate", "reimbursement"},
	},
	{
		Name:        "Advance Payments & Security",
		Description: "Prepayments, deposits, or financial guarantees",
		Group:       TermGroupFinancial,
		RiskSeller:  4,
		RiskBuyer:   7,
		Rationale:   "Seller benefits from advances; buyer bears prepayment risk",
		Phrases:     []string{"deposit", "advance", "prepayment", "letter of credit", "security"},
	},

	// Legal terms.
	{
		Name:        "Indemnities",
		Description: "Protection from third-party claims (IP, injury, breach of law, etc.)",
		Group:       TermGroupLegal,
		RiskSeller:  5,
		RiskBuyer:   9,
		Rationale:   "Indemnities shift substantial third-party legal risk to seller",
		Phrases:     []string{"indemnify", "hold harmless", "defense", "third party claim"},
	},
	{
		Name:        "Limitation of Liability",
		Description: "Caps or exclusions on damages recoverable by either party",
		Group:       TermGroupLegal,
		RiskSeller:  8,
		RiskBuyer:   6,
		Rationale:   "Caps protect seller; buyers worry about capped recovery for damages",
		Phrases:     []string{"limitation of liability", "cap", "excluded damages", "consequential"},
	},
	{
		Name:        "Dispute Resolution",
		Description: "Defines governing law, jurisdiction, and arbitration or mediation rules",
		Group:       TermGroupLegal,
		RiskSeller:  5,
		RiskBuyer:   6,
		Rationale:   "Venue and arbitration impact enforceability and cost for both",
		Phrases:     []string{"arbitration", "mediation", "jurisdiction", "governing law", "AAA"},
	},
	{
		Name:        "Termination for Cause",
		Description: "Right to terminate if the other party breaches key obligations",
		Group:       TermGroupLegal,
		RiskSeller:  6,
		RiskBuyer:   7,
		Rationale:   "Seller risks losing revenue on termination; buyer needs remedy for breach",
		Phrases:     []string{"terminate for cause", "material breach", "cure period"},
	},
	{
		Name:        "Termination for Convenience",
		Description: "Right to terminate without breach, often with notice period",
		Group:       TermGroupLegal,
		RiskSeller:  7,
		RiskBuyer:   5,
		Rationale:   "Convenience termination is seller risk (loss of future revenue)",
		Phrases:     []string{"termination for convenience", "notice period", "termination fee"},
	},
	{
		Name:        "Force Majeure & Change in Law",
		Description: "Relieves obligations due to events beyond control or new laws",
		Group:       TermGroupLegal,
		RiskSeller:  6,
		RiskBuyer:   6,
		Rationale:   "Protects both; buyer needs continuity, seller needs excuse for non-performance",
		Phrases:     []string{"force majeure", "acts of god", "change in law", "epidemic", "pandemic"},
	},
	{
		Name:        "Assignment & Subcontracting",
		Description: "Right to assign or subcontract contract obligations",
		Group:       TermGroupLegal,
		RiskSeller:  5,
		RiskBuyer:   6,
		Rationale:   "Seller wants subcontract flexibility; buyer wants control over assignment",
		Phrases:     []string{"assign", "assignment", "subcontract", "novation", "delegate"},
	},

	// Compliance terms.
	{
		Name:        "Compliance with Laws & Ethics",
		Description: "General obligation to comply with laws, codes of conduct, anti-bribery rules",
		Group:       TermGroupCompliance,
		RiskSeller:  8,
		RiskBuyer:   7,
		Rationale:   "High for buyer (regulatory exposure) and seller (operational compliance)",
		Phrases:     []string{"comply with law", "anti-corruption", "anti-bribery", "law", "regulation"},
	},
	{
		Name:        "Audit & Inspection Rights",
		Description: "Buyer's right to inspect records or verify compliance",
		Group:       TermGroupCompliance,
		RiskSeller:  9,
		RiskBuyer:   6,
		Rationale:   "Critical for buyer oversight; costly for seller if extensive audits apply",
		Phrases:     []string{"audit", "inspect", "records", "examination", "access to books"},
	},
	{
		Name:        "Data Protection & Privacy",
		Description: "Obligations under data privacy laws such as GDPR or HIPAA",
		Group:       TermGroupCompliance,
		RiskSeller:  9,
		RiskBuyer:   8,
		Rationale:   "High for buyer and very important for seller due to liability and trust",
		Phrases:     []string{"privacy", "GDPR", "HIPAA", "personal data", "PII", "data processing"},
	},
	{
		Name:        "Information Security & Cybersecurity",
		Description: "Technical and procedural safeguards for systems and data",
		Group:       TermGroupCompliance,
		RiskSeller:  9,
		RiskBuyer:   8,
		Rationale:   "Both need strong security; buyer protects customers, seller protects platform",
		Phrases:     []string{"security", "SOC2", "encryption", "breach", "incident response"},
	},
	{
		Name:        "Anti-Bribery & Corruption",
		Description: "Representation of ethical behavior and no bribery or kickbacks",
		Group:       TermGroupCompliance,
		RiskSeller:  7,
		RiskBuyer:   6,
		Rationale:   "High reputational/regulatory risk to both, slightly higher for buyer oversight",
		Phrases:     []string{"anti-bribery", "FCPA", "corruption", "bribery", "kickback"},
	},

	// Operational terms.
	{
		Name:        "Scope of Work / Deliverables",
		Description: "Defines the specific goods or services and their quality levels",
		Group:       TermGroupOperational,
		RiskSeller:  6,
		RiskBuyer:   9,
		Rationale:   "Critical operationally for seller to deliver; buyer depends on scope for value",
		Phrases:     []string{"scope", "statement of work", "deliverable", "SOW", "milestones"},
	},
	{
		Name:        "Service Levels (SLA)",
		Description: "Defines measurable performance metrics (uptime, response time, etc.)",
		Group:       TermGroupOperational,
		RiskSeller:  6,
		RiskBuyer:   9,
		Rationale:   "SLA is buyer-critical for service quality; seller must meet uptime and response targets",
		Phrases:     []string{"SLA", "uptime", "availability", "99.9%", "response time"},
	},
	{
		Name:        "Warranties (Performance & Quality)",
		Description: "Assurances about functionality or fitness for purpose",
		Group:       TermGroupOperational,
		RiskSeller:  6,
		RiskBuyer:   8,
		Rationale:   "Warranties provide buyer remedies; seller assumes repair/replacement obligations",
		Phrases:     []string{"warranty", "merchantability", "fitness for purpose", "remedy"},
	},
	{
		Name:        "Change Control / Variation Orders",
		Description: "Procedures for changing scope, schedule, or cost",
		Group:       TermGroupOperational,
		RiskSeller:  6,
		RiskBuyer:   7,
		Rationale:   "Controls scope creep; financial impact for seller and buyer",
		Phrases:     []string{"change order", "variation", "change request", "scope change"},
	},

	// Intellectual property.
	{
		Name:        "Intellectual Property Ownership",
		Description: "Ownership and usage rights of IP created or used under the contract",
		Group:       TermGroupLegal,
		RiskSeller:  4,
		RiskBuyer:   9,
		Rationale:   "IP ownership is seller-critical; buyers often seek license not ownership",
		Phrases:     []string{"ownership", "intellectual property", "IP", "assign", "ownership of work"},
	},
	{
		Name:        "License Grant & Restrictions",
		Description: "Scope of rights granted to use IP, software, or technology",
		Group:       TermGroupLegal,
		RiskSeller:  6,
		RiskBuyer:   8,
		Rationale:   "License scope critical to buyer rights and seller revenue model",
		Phrases:     []string{"license", "sublicense", "sublicensing", "non-transferable", "non-exclusive"},
	},
	{
		Name:        "Confidentiality & Non-Disclosure",
		Description: "Protection of sensitive information shared between parties",
		Group:       TermGroupLegal,
		RiskSeller:  7,
		RiskBuyer:   7,
		Rationale:   "Mutual confidentiality important to both parties",
		Phrases:     []string{"confidential", "NDA", "non-disclosure", "trade secret"},
	},

	// Strategic and competitive terms.
	{
		Name:        "Exclusivity / Non-Compete",
		Description: "Restricts one party from working with competitors or in similar markets",
		Group:       TermGroupCompetitive,
		RiskSeller:  3,
		RiskBuyer:   6,
		Rationale:   "Sellers value exclusivity; buyers sometimes request exclusivity",
		Phrases:     []string{"exclusive", "exclusivity", "non-compete", "territory"},
	},
	{
		Name:        "Most-Favored-Nation (MFN) / Price Parity",
		Description: "Guarantees pricing equal to the best offered to other customers",
		Group:       TermGroupPricing,
		RiskSeller:  3,
		RiskBuyer:   5,
		Rationale:   "Price parity clauses protect buyer; sellers avoid MFN",
		Phrases:     []string{"MFN", "most favored nation", "price parity", "best price"},
	},
	{
		Name:        "Change of Control / Ownership",
		Description: "Rights triggered by a merger or acquisition of a party",
		Group:       TermGroupStrategic,
		RiskSeller:  5,
		RiskBuyer:   6,
		Rationale:   "Buyer may want consent rights; seller wants assignment flexibility",
		Phrases:     []string{"change of control", "merger", "acquisition", "assignment"},
	},
}
