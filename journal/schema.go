package journal

// Schema creates the ledger tables. Decimal amounts are stored as TEXT so
// SQLite never coerces them to REAL.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	user_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	capital TEXT NOT NULL DEFAULT '0',
	profit TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	qty TEXT NOT NULL,
	avg_price TEXT NOT NULL,
	strategy TEXT NOT NULL,
	accounts_json TEXT NOT NULL,
	status TEXT NOT NULL CHECK (status IN ('open', 'closed')),
	total_fees TEXT NOT NULL DEFAULT '0',
	opened_at DATETIME NOT NULL,
	fills_json TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);

CREATE TABLE IF NOT EXISTS trade_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trade_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	entry_price TEXT NOT NULL,
	exit_price TEXT NOT NULL,
	qty TEXT NOT NULL,
	profit_loss TEXT NOT NULL,
	fee TEXT NOT NULL DEFAULT '0',
	timestamp DATETIME NOT NULL,
	breakdown_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_trade ON trade_history(trade_id);
CREATE INDEX IF NOT EXISTS idx_history_time ON trade_history(timestamp);
`
