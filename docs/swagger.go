package docs

import "github.com/swaggo/swag"

// @title           DevFlow API
// @version         1.0
// @description     Freelance business management: clients, projects, kanban boards, finances and time tracking.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration and login

// @tag.name Clients
// @tag.description Client management operations

// @tag.name Projects
// @tag.description Project management operations

// @tag.name Boards
// @tag.description Kanban board operations

// @tag.name Tasks
// @tag.description Task operations

// @tag.name Transactions
// @tag.description Income and expense tracking

// @tag.name Time Entries
// @tag.description Timer and manual time tracking

// @tag.name Reports
// @tag.description Textual report generation

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token"
        }
    },
    "paths": {}
}`

var spec = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "DevFlow API",
	Description:      "Freelance business management: clients, projects, kanban boards, finances and time tracking.",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(spec.InstanceName(), spec)
}

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return spec
}
