package postgres

import "github.com/bootcamphub/bootcamp-api/internal/query"

// Query schemas: the allow-list of filterable/sortable/selectable fields
// per resource, mapping wire names to columns. Fields outside these maps
// are rejected by the query translator, never passed to the database.

var createdAtDesc = []query.SortKey{{Column: "created_at", Desc: true}}

// UsersSchema deliberately excludes the password column.
var UsersSchema = &query.Schema{
	Table: "users",
	Fields: map[string]query.Field{
		"id":         {Column: "id"},
		"name":       {Column: "name"},
		"email":      {Column: "email"},
		"role":       {Column: "role"},
		"created_at": {Column: "created_at"},
	},
	DefaultSort: createdAtDesc,
}

var BootcampsSchema = &query.Schema{
	Table: "bootcamps",
	Fields: map[string]query.Field{
		"id":             {Column: "id"},
		"user_id":        {Column: "user_id"},
		"name":           {Column: "name"},
		"slug":           {Column: "slug"},
		"description":    {Column: "description"},
		"website":        {Column: "website"},
		"phone":          {Column: "phone"},
		"email":          {Column: "email"},
		"address":        {Column: "address"},
		"careers":        {Column: "careers", Array: true},
		"average_rating": {Column: "average_rating"},
		"average_cost":   {Column: "average_cost"},
		"photo":          {Column: "photo"},
		"housing":        {Column: "housing"},
		"job_assistance": {Column: "job_assistance"},
		"job_guarantee":  {Column: "job_guarantee"},
		"accept_gi":      {Column: "accept_gi"},
		"created_at":     {Column: "created_at"},
	},
	DefaultSort: createdAtDesc,
}

var CoursesSchema = &query.Schema{
	Table: "courses",
	Fields: map[string]query.Field{
		"id":                    {Column: "id"},
		"bootcamp_id":           {Column: "bootcamp_id"},
		"user_id":               {Column: "user_id"},
		"title":                 {Column: "title"},
		"description":           {Column: "description"},
		"weeks":                 {Column: "weeks"},
		"tuition":               {Column: "tuition"},
		"minimum_skill":         {Column: "minimum_skill"},
		"scholarship_available": {Column: "scholarship_available"},
		"created_at":            {Column: "created_at"},
	},
	DefaultSort: createdAtDesc,
}

var ReviewsSchema = &query.Schema{
	Table: "reviews",
	Fields: map[string]query.Field{
		"id":          {Column: "id"},
		"bootcamp_id": {Column: "bootcamp_id"},
		"user_id":     {Column: "user_id"},
		"title":       {Column: "title"},
		"text":        {Column: "text"},
		"rating":      {Column: "rating"},
		"created_at":  {Column: "created_at"},
	},
	DefaultSort: createdAtDesc,
}
