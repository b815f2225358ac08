package domain

// DefaultCatalog returns the built-in modules in display order.
// Each call returns fresh copies.
func DefaultCatalog() []ModuleTemplate {
	return []ModuleTemplate{
		{
			Module: Module{
				ID:          "policies",
				Name:        "Policies",
				Description: "Insurance policies, coverage and renewal dates.",
				Icon:        "shield",
				Prompts: []string{
					"Show policies expiring this quarter",
					"Which policies are pending underwriting?",
				},
			},
			Fields: []FieldDefinition{
				{ID: "policyNumber", Label: "Policy Number", Type: FieldText, Required: true},
				{ID: "holder", Label: "Policy Holder", Type: FieldText, Required: true},
				{ID: "email", Label: "Holder Email", Type: FieldEmail},
				{ID: "premium", Label: "Annual Premium", Type: FieldCurrency},
				{ID: "renewalDate", Label: "Renewal Date", Type: FieldDate},
				{ID: "status", Label: "Status", Type: FieldSelect, Options: []string{"Active", "Pending", "Lapsed"}},
			},
			SampleRecords: []Record{
				NewRecord("pol-1001", map[string]string{
					"policyNumber": "PL-1001", "holder": "Northwind Traders", "email": "risk@northwind.example",
					"premium": "12500", "renewalDate": "2025-06-30", "status": "Active",
				}),
				NewRecord("pol-1002", map[string]string{
					"policyNumber": "PL-1002", "holder": "Contoso Ltd", "email": "insurance@contoso.example",
					"premium": "8400", "renewalDate": "2025-09-15", "status": "Pending",
				}),
				NewRecord("pol-1003", map[string]string{
					"policyNumber": "PL-1003", "holder": "Northwind Traders", "email": "Risk@Northwind.example ",
					"premium": "3100", "renewalDate": "2025-06-30", "status": "Active",
				}),
			},
		},
		{
			Module: Module{
				ID:          "claims",
				Name:        "Claims",
				Description: "First notice of loss through settlement.",
				Icon:        "file-warning",
				Prompts: []string{
					"List open claims above 10,000",
					"Summarise claims filed last month",
				},
			},
			Fields: []FieldDefinition{
				{ID: "claimNumber", Label: "Claim Number", Type: FieldText, Required: true},
				{ID: "policyNumber", Label: "Policy Number", Type: FieldText},
				{ID: "claimant", Label: "Claimant", Type: FieldText},
				{ID: "amount", Label: "Claimed Amount", Type: FieldCurrency},
				{ID: "filedOn", Label: "Filed On", Type: FieldDate},
				{ID: "stage", Label: "Stage", Type: FieldStatus},
				{ID: "notes", Label: "Notes", Type: FieldTextarea},
			},
			SampleRecords: []Record{
				NewRecord("clm-2001", map[string]string{
					"claimNumber": "CL-2001", "policyNumber": "PL-1001", "claimant": "Northwind Traders",
					"amount": "4200", "filedOn": "2025-02-11", "stage": "Open", "notes": "Water damage, warehouse 3",
				}),
				NewRecord("clm-2002", map[string]string{
					"claimNumber": "CL-2002", "policyNumber": "PL-1002", "claimant": "Contoso Ltd",
					"amount": "15800", "filedOn": "2025-03-02", "stage": "Review",
				}),
			},
		},
		{
			Module: Module{
				ID:          "clients",
				Name:        "Clients",
				Description: "Client accounts and primary contacts.",
				Icon:        "users",
				Prompts: []string{
					"Show clients in the enterprise segment",
					"Find clients without a phone number",
				},
			},
			Fields: []FieldDefinition{
				{ID: "name", Label: "Client Name", Type: FieldText, Required: true},
				{ID: "contact", Label: "Primary Contact", Type: FieldText},
				{ID: "email", Label: "Email", Type: FieldEmail},
				{ID: "phone", Label: "Phone", Type: FieldPhone},
				{ID: "segment", Label: "Segment", Type: FieldSelect, Options: []string{"SMB", "Mid-Market", "Enterprise"}},
			},
			SampleRecords: []Record{
				NewRecord("cli-3001", map[string]string{
					"name": "Northwind Traders", "contact": "Ana Trujillo", "email": "ana@northwind.example",
					"phone": "+1 555 0100", "segment": "Enterprise",
				}),
				NewRecord("cli-3002", map[string]string{
					"name": "Contoso Ltd", "contact": "Pat Kim", "email": "pat@contoso.example",
					"phone": "+1 555 0199", "segment": "Mid-Market",
				}),
				NewRecord("cli-3003", map[string]string{
					"name": "northwind  traders", "contact": "A. Trujillo", "email": "ana@northwind.example",
					"segment": "Enterprise",
				}),
			},
		},
		{
			Module: Module{
				ID:          "brokers",
				Name:        "Brokers",
				Description: "Partner brokers and commission terms.",
				Icon:        "briefcase",
				Prompts: []string{
					"Which brokers have the highest commission?",
				},
			},
			Fields: []FieldDefinition{
				{ID: "name", Label: "Broker", Type: FieldText, Required: true},
				{ID: "email", Label: "Email", Type: FieldEmail},
				{ID: "phone", Label: "Phone", Type: FieldPhone},
				{ID: "commission", Label: "Commission %", Type: FieldNumber},
			},
			SampleRecords: []Record{
				NewRecord("brk-4001", map[string]string{
					"name": "Harbor Brokerage", "email": "desk@harbor.example", "phone": "+1 555 0142", "commission": "12.5",
				}),
			},
		},
	}
}

// DefaultSnapshot builds the snapshot of the built-in catalog.
func DefaultSnapshot(catalog []ModuleTemplate) Snapshot {
	s := NewSnapshot()
	for _, tpl := range catalog {
		fields := make([]FieldDefinition, len(tpl.Fields))
		for i, f := range tpl.Fields {
			fields[i] = f.Clone()
		}
		records := make([]Record, len(tpl.SampleRecords))
		for i, r := range tpl.SampleRecords {
			records[i] = r.Clone()
		}
		s.Fields[tpl.Module.ID] = fields
		s.Records[tpl.Module.ID] = records
	}
	return s
}
