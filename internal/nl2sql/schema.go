package nl2sql

// DefaultSchema is the DDL of the internship database shown to the model.
const DefaultSchema = `
CREATE TABLE user_details (
    name VARCHAR(200),
    id SERIAL PRIMARY KEY,
    user_name VARCHAR(200) NOT NULL,
    email VARCHAR(200) NOT NULL,
    phone VARCHAR(15) NOT NULL,
    address VARCHAR(200),
    gender VARCHAR(20),
    status VARCHAR(50),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT user_name_unique UNIQUE (user_name),
    CONSTRAINT email_unique UNIQUE (email),
    CONSTRAINT phone_unique UNIQUE (phone)
);

CREATE TABLE internship_details (
    id SERIAL PRIMARY KEY,
    internship_id VARCHAR(100) NOT NULL UNIQUE,
    company_name VARCHAR(200) NOT NULL,
    job_description VARCHAR(2000),
    role VARCHAR(200) NOT NULL,
    seat INT NOT NULL,
    stipend DECIMAL(10,2),
    duration INT,  -- in months
    location VARCHAR(200),
    remote_work BOOLEAN DEFAULT FALSE,
    requirements VARCHAR(1000),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    start_date DATE,
    end_date DATE,
    application_deadline DATE,
    status VARCHAR(200)
);

CREATE TABLE user_internship (
    id SERIAL PRIMARY KEY,
    internship_id VARCHAR(200) NOT NULL,
    user_name VARCHAR(200) NOT NULL,
    application_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    resume_link VARCHAR(500),
    cover_letter_text TEXT,
    interview_date DATE,
    interview_feedback TEXT,
    score DECIMAL(5,2),
    status VARCHAR(200),
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT fk_internship FOREIGN KEY (internship_id) REFERENCES internship_details(internship_id) ON DELETE CASCADE ON UPDATE CASCADE,
    CONSTRAINT fk_user FOREIGN KEY (user_name) REFERENCES user_details(user_name) ON DELETE CASCADE ON UPDATE CASCADE,
    CONSTRAINT unique_internship_user UNIQUE (internship_id, user_name)
);
`

const sampleDataDescription = `
-- Example data in the database:
-- user_details: Contains information about users/students (name, email, phone, etc.)
-- internship_details: Lists available internships with company name, role, and status
-- user_internship: Maps users to internships they've applied for, with application status
`
