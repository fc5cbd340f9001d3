package mysql

const schema = `
CREATE TABLE IF NOT EXISTS product_categories (
	id BIGINT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	level INT NOT NULL,
	parent_id BIGINT NULL,
	CONSTRAINT fk_categories_parent FOREIGN KEY (parent_id) REFERENCES product_categories(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS products (
	id BIGINT PRIMARY KEY,
	name VARCHAR(200) NOT NULL,
	category_id BIGINT NOT NULL,
	original_price DECIMAL(12,2) NOT NULL,
	current_price DECIMAL(12,2) NOT NULL,
	cost DECIMAL(12,2) NOT NULL,
	stock INT NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	description TEXT,
	created_at DATETIME NOT NULL,
	CONSTRAINT fk_products_category FOREIGN KEY (category_id) REFERENCES product_categories(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS users (
	id BIGINT PRIMARY KEY,
	username VARCHAR(100) NOT NULL UNIQUE,
	full_name VARCHAR(100) NOT NULL,
	email VARCHAR(200) NOT NULL,
	gender VARCHAR(10),
	age INT,
	city VARCHAR(100),
	registration_date DATE NOT NULL,
	last_login_date DATE NULL,
	source VARCHAR(50),
	loyalty_tier VARCHAR(20) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS marketing_campaigns (
	id BIGINT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	budget DECIMAL(12,2) NOT NULL,
	discount_type VARCHAR(20) NOT NULL,
	discount_value DECIMAL(10,2) NOT NULL,
	target_audience VARCHAR(100)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS traffic_sources (
	id BIGINT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	source_type VARCHAR(50) NOT NULL,
	campaign_id BIGINT NULL,
	CONSTRAINT fk_sources_campaign FOREIGN KEY (campaign_id) REFERENCES marketing_campaigns(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS orders (
	id BIGINT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	order_date DATETIME NOT NULL,
	status VARCHAR(20) NOT NULL,
	payment_method VARCHAR(50) NOT NULL,
	channel VARCHAR(50) NOT NULL,
	device VARCHAR(20) NOT NULL,
	total_amount DECIMAL(12,2) NOT NULL,
	discount_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
	INDEX idx_orders_date (order_date),
	CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS order_items (
	id BIGINT PRIMARY KEY,
	order_id BIGINT NOT NULL,
	product_id BIGINT NOT NULL,
	quantity INT NOT NULL,
	unit_price DECIMAL(12,2) NOT NULL,
	discount DECIMAL(12,2) NOT NULL DEFAULT 0,
	CONSTRAINT fk_items_order FOREIGN KEY (order_id) REFERENCES orders(id),
	CONSTRAINT fk_items_product FOREIGN KEY (product_id) REFERENCES products(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS order_campaigns (
	order_id BIGINT NOT NULL,
	campaign_id BIGINT NOT NULL,
	PRIMARY KEY (order_id, campaign_id),
	CONSTRAINT fk_links_order FOREIGN KEY (order_id) REFERENCES orders(id),
	CONSTRAINT fk_links_campaign FOREIGN KEY (campaign_id) REFERENCES marketing_campaigns(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS user_behaviors (
	id BIGINT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	product_id BIGINT NULL,
	behavior_type VARCHAR(20) NOT NULL,
	behavior_time DATETIME NOT NULL,
	source_id BIGINT NULL,
	order_id BIGINT NULL,
	INDEX idx_behaviors_user (user_id),
	CONSTRAINT fk_behaviors_user FOREIGN KEY (user_id) REFERENCES users(id),
	CONSTRAINT fk_behaviors_product FOREIGN KEY (product_id) REFERENCES products(id),
	CONSTRAINT fk_behaviors_source FOREIGN KEY (source_id) REFERENCES traffic_sources(id),
	CONSTRAINT fk_behaviors_order FOREIGN KEY (order_id) REFERENCES orders(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`

func (d *Dialect) Schema() string {
	return schema
}
