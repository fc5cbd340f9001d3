package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS product_categories (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	level INTEGER NOT NULL,
	parent_id INTEGER REFERENCES product_categories(id)
);

CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	category_id INTEGER NOT NULL REFERENCES product_categories(id),
	original_price DECIMAL(12,2) NOT NULL,
	current_price DECIMAL(12,2) NOT NULL,
	cost DECIMAL(12,2) NOT NULL,
	stock INTEGER NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	description TEXT,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	full_name TEXT NOT NULL,
	email TEXT NOT NULL,
	gender TEXT,
	age INTEGER,
	city TEXT,
	registration_date DATE NOT NULL,
	last_login_date DATE,
	source TEXT,
	loyalty_tier TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS marketing_campaigns (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	budget DECIMAL(12,2) NOT NULL,
	discount_type TEXT NOT NULL,
	discount_value DECIMAL(10,2) NOT NULL,
	target_audience TEXT
);

CREATE TABLE IF NOT EXISTS traffic_sources (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	source_type TEXT NOT NULL,
	campaign_id INTEGER REFERENCES marketing_campaigns(id)
);

CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	order_date DATETIME NOT NULL,
	status TEXT NOT NULL,
	payment_method TEXT NOT NULL,
	channel TEXT NOT NULL,
	device TEXT NOT NULL,
	total_amount DECIMAL(12,2) NOT NULL,
	discount_amount DECIMAL(12,2) NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_orders_date ON orders (order_date);

CREATE TABLE IF NOT EXISTS order_items (
	id INTEGER PRIMARY KEY,
	order_id INTEGER NOT NULL REFERENCES orders(id),
	product_id INTEGER NOT NULL REFERENCES products(id),
	quantity INTEGER NOT NULL,
	unit_price DECIMAL(12,2) NOT NULL,
	discount DECIMAL(12,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS order_campaigns (
	order_id INTEGER NOT NULL REFERENCES orders(id),
	campaign_id INTEGER NOT NULL REFERENCES marketing_campaigns(id),
	PRIMARY KEY (order_id, campaign_id)
);

CREATE TABLE IF NOT EXISTS user_behaviors (
	id INTEGER PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	product_id INTEGER REFERENCES products(id),
	behavior_type TEXT NOT NULL,
	behavior_time DATETIME NOT NULL,
	source_id INTEGER REFERENCES traffic_sources(id),
	order_id INTEGER REFERENCES orders(id)
);

CREATE INDEX IF NOT EXISTS idx_behaviors_user ON user_behaviors (user_id);
`

func (d *Dialect) Schema() string {
	return schema
}
