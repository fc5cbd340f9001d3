package postgres

const schema = `
CREATE TABLE IF NOT EXISTS product_categories (
	id BIGINT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	level INTEGER NOT NULL,
	parent_id BIGINT REFERENCES product_categories(id)
);

CREATE TABLE IF NOT EXISTS products (
	id BIGINT PRIMARY KEY,
	name VARCHAR(200) NOT NULL,
	category_id BIGINT NOT NULL REFERENCES product_categories(id),
	original_price NUMERIC(12,2) NOT NULL,
	current_price NUMERIC(12,2) NOT NULL,
	cost NUMERIC(12,2) NOT NULL,
	stock INTEGER NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	description TEXT,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id BIGINT PRIMARY KEY,
	username VARCHAR(100) NOT NULL UNIQUE,
	full_name VARCHAR(100) NOT NULL,
	email VARCHAR(200) NOT NULL,
	gender VARCHAR(10),
	age INTEGER,
	city VARCHAR(100),
	registration_date DATE NOT NULL,
	last_login_date DATE,
	source VARCHAR(50),
	loyalty_tier VARCHAR(20) NOT NULL
);

CREATE TABLE IF NOT EXISTS marketing_campaigns (
	id BIGINT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	budget NUMERIC(12,2) NOT NULL,
	discount_type VARCHAR(20) NOT NULL,
	discount_value NUMERIC(10,2) NOT NULL,
	target_audience VARCHAR(100)
);

CREATE TABLE IF NOT EXISTS traffic_sources (
	id BIGINT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	source_type VARCHAR(50) NOT NULL,
	campaign_id BIGINT REFERENCES marketing_campaigns(id)
);

CREATE TABLE IF NOT EXISTS orders (
	id BIGINT PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id),
	order_date TIMESTAMP NOT NULL,
	status VARCHAR(20) NOT NULL,
	payment_method VARCHAR(50) NOT NULL,
	channel VARCHAR(50) NOT NULL,
	device VARCHAR(20) NOT NULL,
	total_amount NUMERIC(12,2) NOT NULL,
	discount_amount NUMERIC(12,2) NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_orders_date ON orders (order_date);

CREATE TABLE IF NOT EXISTS order_items (
	id BIGINT PRIMARY KEY,
	order_id BIGINT NOT NULL REFERENCES orders(id),
	product_id BIGINT NOT NULL REFERENCES products(id),
	quantity INTEGER NOT NULL,
	unit_price NUMERIC(12,2) NOT NULL,
	discount NUMERIC(12,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS order_campaigns (
	order_id BIGINT NOT NULL REFERENCES orders(id),
	campaign_id BIGINT NOT NULL REFERENCES marketing_campaigns(id),
	PRIMARY KEY (order_id, campaign_id)
);

CREATE TABLE IF NOT EXISTS user_behaviors (
	id BIGINT PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id),
	product_id BIGINT REFERENCES products(id),
	behavior_type VARCHAR(20) NOT NULL,
	behavior_time TIMESTAMP NOT NULL,
	source_id BIGINT REFERENCES traffic_sources(id),
	order_id BIGINT REFERENCES orders(id)
);

CREATE INDEX IF NOT EXISTS idx_behaviors_user ON user_behaviors (user_id);
`

func (d *Dialect) Schema() string {
	return schema
}
