package models

import "time"

// Service is a company service offering (BIM, surveying, ...).
type Service struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Category      string    `gorm:"size:100" json:"category"`
	ImageURL      string    `gorm:"size:512" json:"image_url"`
	SoftwareTools string    `gorm:"size:512" json:"software_tools"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TeamMember is a staff profile with bilingual name/position/bio.
type TeamMember struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	NameEN     string    `gorm:"size:255;not null" json:"name_en"`
	NameFA     string    `gorm:"size:255" json:"name_fa"`
	PositionEN string    `gorm:"size:255" json:"position_en"`
	PositionFA string    `gorm:"size:255" json:"position_fa"`
	Email      string    `gorm:"size:255" json:"email"`
	Phone      string    `gorm:"size:50" json:"phone"`
	ImageURL   string    `gorm:"size:512" json:"image_url"`
	BioEN      string    `gorm:"type:text" json:"bio_en"`
	BioFA      string    `gorm:"type:text" json:"bio_fa"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Certificate is a company certification with optional validity window.
type Certificate struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TitleEN       string    `gorm:"size:255;not null" json:"title_en"`
	TitleFA       string    `gorm:"size:255" json:"title_fa"`
	ImageURL      string    `gorm:"size:512" json:"image_url"`
	DescriptionEN string    `gorm:"type:text" json:"description_en"`
	DescriptionFA string    `gorm:"type:text" json:"description_fa"`
	IssueDate     string    `gorm:"size:50" json:"issue_date"`
	ExpiryDate    string    `gorm:"size:50" json:"expiry_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// License is an operating license issued by an authority.
type License struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	TitleEN        string    `gorm:"size:255;not null" json:"title_en"`
	TitleFA        string    `gorm:"size:255" json:"title_fa"`
	ImageURL       string    `gorm:"size:512" json:"image_url"`
	DescriptionEN  string    `gorm:"type:text" json:"description_en"`
	DescriptionFA  string    `gorm:"type:text" json:"description_fa"`
	IssueDate      string    `gorm:"size:50" json:"issue_date"`
	IssueAuthority string    `gorm:"size:255" json:"issue_authority"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Project is a portfolio entry, orderable and optionally featured.
type Project struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TitleEN       string    `gorm:"size:255;not null" json:"title_en"`
	TitleFA       string    `gorm:"size:255" json:"title_fa"`
	DescriptionEN string    `gorm:"type:text" json:"description_en"`
	DescriptionFA string    `gorm:"type:text" json:"description_fa"`
	ImageURL      string    `gorm:"size:512" json:"image_url"`
	ArchiveURL    string    `gorm:"size:512" json:"archive_url"`
	IframeURL     string    `gorm:"size:512" json:"iframe_url"`
	Category      string    `gorm:"size:100" json:"category"`
	SortOrder     int       `gorm:"column:sort_order;default:0" json:"order"`
	IsFeatured    bool      `json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Video is an embedded video, orderable, with a view counter.
type Video struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	SortOrder int       `gorm:"column:sort_order;default:0" json:"order"`
	Active    bool      `gorm:"default:true" json:"active"`
	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactSubmission is a message left through the public contact form.
type ContactSubmission struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Status      string    `gorm:"size:50;default:new" json:"status"`
	IPAddress   string    `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent   string    `gorm:"size:512" json:"user_agent,omitempty"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}

// CompanyInfo is a single-row resource describing the company.
type CompanyInfo struct {
	ID                   uint      `gorm:"primarykey" json:"id"`
	Name                 string    `gorm:"size:255;not null" json:"name"`
	DescriptionEN        string    `gorm:"type:text" json:"description_en"`
	DescriptionFA        string    `gorm:"type:text" json:"description_fa"`
	FoundedYear          int       `json:"founded_year"`
	HeadquartersLocation string    `gorm:"size:255" json:"headquarters_location"`
	Phone                string    `gorm:"size:50" json:"phone"`
	Email                string    `gorm:"size:255" json:"email"`
	AddressCity          string    `gorm:"size:100" json:"address_city"`
	AddressCountry       string    `gorm:"size:100" json:"address_country"`
	TotalEmployees       int       `json:"total_employees"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Statistics is a single-row resource of headline numbers for the landing page.
type Statistics struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	AnnualProjects   int       `json:"annual_projects"`
	ServiceTypes     int       `json:"service_types"`
	Employees        int       `json:"employees"`
	SatisfiedClients int       `json:"satisfied_clients"`
	UpdatedAt        time.Time `json:"updated_at"`
}
