package models

import "time"

type Project struct {
	ID            int64
	OwnerID       int64
	OwnerUsername string
	Title         string
	Description   string
	TechStack     string
	DemoLink      string
	SourceCode    string
	Image         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
