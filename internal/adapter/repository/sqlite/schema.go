package sqlite

// Money and rates are stored as decimal text so values round-trip exactly.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS social_security (
	plan_key                        TEXT PRIMARY KEY,
	current_monthly_benefit         TEXT    NOT NULL DEFAULT '0',
	expected_retirement_age         INTEGER NOT NULL DEFAULT 67,
	expected_monthly_benefit        TEXT    NOT NULL DEFAULT '0',
	spouse_current_monthly_benefit  TEXT    NOT NULL DEFAULT '0',
	spouse_expected_monthly_benefit TEXT    NOT NULL DEFAULT '0',
	updated_at                      TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS annuities (
	plan_key           TEXT    NOT NULL,
	position           INTEGER NOT NULL,
	id                 TEXT    NOT NULL,
	name               TEXT    NOT NULL DEFAULT '',
	annuity_type       TEXT    NOT NULL CHECK (annuity_type IN ('immediate', 'deferred', 'variable', 'fixed')),
	monthly_payment    TEXT    NOT NULL DEFAULT '0',
	initial_investment TEXT    NOT NULL DEFAULT '0',
	created_at         TEXT    NOT NULL,
	updated_at         TEXT    NOT NULL,
	PRIMARY KEY (plan_key, position)
);

CREATE TABLE IF NOT EXISTS housing_plans (
	plan_key            TEXT PRIMARY KEY,
	preferred_location  TEXT    NOT NULL DEFAULT '',
	max_monthly_payment TEXT    NOT NULL DEFAULT '0',
	down_payment        TEXT    NOT NULL DEFAULT '0',
	interest_rate       TEXT    NOT NULL DEFAULT '7.5',
	loan_term           INTEGER NOT NULL DEFAULT 30,
	property_tax_rate   TEXT    NOT NULL DEFAULT '1.2',
	insurance_rate      TEXT    NOT NULL DEFAULT '0.5',
	updated_at          TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS current_homes (
	plan_key          TEXT PRIMARY KEY,
	current_value     TEXT    NOT NULL DEFAULT '0',
	mortgage_balance  TEXT    NOT NULL DEFAULT '0',
	monthly_payment   TEXT    NOT NULL DEFAULT '0',
	interest_rate     TEXT    NOT NULL DEFAULT '0',
	location          TEXT    NOT NULL DEFAULT '',
	years_remaining   INTEGER NOT NULL DEFAULT 0,
	property_tax_rate TEXT    NOT NULL DEFAULT '0',
	insurance_rate    TEXT    NOT NULL DEFAULT '0',
	updated_at        TEXT    NOT NULL
);
`
