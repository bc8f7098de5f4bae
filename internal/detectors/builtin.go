package detectors

import "github.com/redactyl/litscan/internal/types"

// Builtin returns the built-in credential rules. The slice is freshly
// allocated and may be modified by the caller.
func Builtin() []Rule {
	return []Rule{
		{ID: "aws_access_key", Pattern: `AKIA[0-9A-Z]{16}`, Severity: types.SevHigh, Confidence: 0.9},
		// Very broad; needs the key name on the same line.
		{ID: "aws_secret_key", Pattern: `(?i)(aws_secret_access_key|aws_secret_key|secretKey)["'\s:=]+([A-Za-z0-9/+=]{40})`, Severity: types.SevHigh, Confidence: 0.95, Group: 2},
		{ID: "github_token", Pattern: `g(hp|ho|hu|hs|hr)_[A-Za-z0-9]{36}`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "gitlab_token", Pattern: `\bglpat-[A-Za-z0-9_-]{20}\b`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "slack_token", Pattern: `xox[abprs]-[A-Za-z0-9-]{10,48}`, Severity: types.SevHigh, Confidence: 0.85},
		{ID: "slack_webhook", Pattern: `https://hooks\.slack\.com/services/[A-Z0-9]{9,}/[A-Z0-9]{9,}/[A-Za-z0-9]{24,}`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "discord_webhook", Pattern: `https://discord\.com/api/webhooks/\d+/[A-Za-z0-9_-]+`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "stripe_secret", Pattern: `sk_live_[A-Za-z0-9]{24,}`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "stripe_webhook_secret", Pattern: `\bwhsec_[A-Za-z0-9]{16,}\b`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "openai_api_key", Pattern: `\bsk-[A-Za-z0-9]{32,}\b`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "anthropic_api_key", Pattern: `\bsk-ant-[A-Za-z0-9_-]{30,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "google_api_key", Pattern: `\bAIza[0-9A-Za-z_-]{35}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "sendgrid_api_key", Pattern: `\bSG\.[A-Za-z0-9_-]{16}\.[A-Za-z0-9_-]{32,}\b`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "npm_token", Pattern: `\bnpm_[A-Za-z0-9]{36}\b`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "pypi_token", Pattern: `\bpypi-[A-Za-z0-9_-]{50,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "huggingface_token", Pattern: `\bhf_[A-Za-z0-9]{35,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "twilio_account_sid", Pattern: `\bAC[0-9a-fA-F]{32}\b`, Severity: types.SevMed, Confidence: 0.9},
		{ID: "twilio_api_key_sid", Pattern: `\bSK[0-9a-fA-F]{32}\b`, Severity: types.SevMed, Confidence: 0.85},
		{ID: "digitalocean_pat", Pattern: `\bdop_v1_[a-f0-9]{64}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "dockerhub_pat", Pattern: `\bdckr_pat_[A-Za-z0-9]{64}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "databricks_pat", Pattern: `\bdapi[A-Za-z0-9]{26,40}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "linear_api_key", Pattern: `\blin_api_[A-Za-z0-9]{40}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "mailgun_api_key", Pattern: `\bkey-[0-9a-f]{32}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "notion_api_key", Pattern: `\bsecret_[A-Za-z0-9]{40,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "sentry_auth_token", Pattern: `\bsntrys_[A-Za-z0-9_-]{40,}\b`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "shopify_token", Pattern: `\bshp(?:at|ua|ss)_[a-f0-9]{32,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "terraform_cloud_token", Pattern: `\btf[ec]\.[A-Za-z0-9]{30,}\b`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "groq_api_key", Pattern: `\bgsk_[A-Za-z0-9]{30,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "openrouter_api_key", Pattern: `\bsk-or-v1-[A-Za-z0-9_-]{20,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "perplexity_api_key", Pattern: `\bpplx-[A-Za-z0-9]{30,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "replicate_api_token", Pattern: `\br8_[A-Za-z0-9]{30,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "flyio_access_token", Pattern: `\bflyv1_[A-Za-z0-9_-]{43,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "newrelic_api_key", Pattern: `\b(?:NRAK|NRAL|NRII|NRAA)-[A-Z0-9]{27,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "snyk_token", Pattern: `\bsnyk_[A-Za-z0-9]{30,}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "posthog_project_key", Pattern: `\bphc_[A-Za-z0-9]{32}\b`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "posthog_personal_key", Pattern: `\bphx_[A-Za-z0-9]{32}\b`, Severity: types.SevHigh, Confidence: 0.95},
		// Connection strings with inline credentials.
		{ID: "postgres_uri_creds", Pattern: `\bpostgres(?:ql)?://[^\s:@/]+:[^\s@/]+@[^\s/]+/[^\s?]+`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "mysql_uri_creds", Pattern: `\bmysql://[^\s:@/]+:[^\s@/]+@[^\s/]+/[^\s?]+`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "mongodb_uri_creds", Pattern: `\bmongodb(?:\+srv)?:/{2}[^\s:@/]+:[^\s@/]+@[^\s/]+/[^\s?]+`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "redis_uri_creds", Pattern: `\bredis(?:\+ssl)?:/{2}:[^@\s]+@`, Severity: types.SevHigh, Confidence: 0.95},
		{ID: "private_key_block", Pattern: `-----BEGIN [A-Z ]*PRIVATE KEY-----`, Severity: types.SevHigh, Confidence: 0.99},
		{ID: "jwt", Pattern: `eyJ[A-Za-z0-9_-]+?\.[A-Za-z0-9._-]+?\.[A-Za-z0-9._-]+`, Severity: types.SevMed, Confidence: 0.7},
	}
}
