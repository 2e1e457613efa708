package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// SubjectsColumns holds the columns for the "subjects" table.
	SubjectsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "icon", Type: field.TypeString, Default: ""},
		{Name: "sort_order", Type: field.TypeInt, Default: 0},
	}
	// SubjectsTable holds the schema information for the "subjects" table.
	SubjectsTable = &schema.Table{
		Name:       "subjects",
		Columns:    SubjectsColumns,
		PrimaryKey: []*schema.Column{SubjectsColumns[0]},
	}

	// LevelsColumns holds the columns for the "levels" table.
	LevelsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "subject_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "sort_order", Type: field.TypeInt},
		{Name: "topics", Type: field.TypeJSON, Nullable: true},
	}
	// LevelsTable holds the schema information for the "levels" table.
	LevelsTable = &schema.Table{
		Name:       "levels",
		Columns:    LevelsColumns,
		PrimaryKey: []*schema.Column{LevelsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "levels_subjects_levels",
				Columns:    []*schema.Column{LevelsColumns[1]},
				RefColumns: []*schema.Column{SubjectsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "level_subject_id_sort_order",
				Unique:  true,
				Columns: []*schema.Column{LevelsColumns[1], LevelsColumns[4]},
			},
		},
	}

	// QuestionsColumns holds the columns for the "questions" table.
	QuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "subject_id", Type: field.TypeString},
		{Name: "level_id", Type: field.TypeString},
		{Name: "question", Type: field.TypeString, Size: 2147483647},
		{Name: "options", Type: field.TypeJSON},
		{Name: "correct_answer", Type: field.TypeString},
		{Name: "explanation", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	// QuestionsTable holds the schema information for the "questions" table.
	QuestionsTable = &schema.Table{
		Name:       "questions",
		Columns:    QuestionsColumns,
		PrimaryKey: []*schema.Column{QuestionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "questions_levels_questions",
				Columns:    []*schema.Column{QuestionsColumns[2]},
				RefColumns: []*schema.Column{LevelsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "question_subject_id_level_id",
				Columns: []*schema.Column{QuestionsColumns[1], QuestionsColumns[2]},
			},
		},
	}

	// AssessmentsColumns holds the columns for the "assessments" table.
	AssessmentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "subject_id", Type: field.TypeString},
		{Name: "questions", Type: field.TypeJSON},
		{Name: "answers", Type: field.TypeJSON, Nullable: true},
		{Name: "scores", Type: field.TypeJSON, Nullable: true},
		{Name: "suggested_level_id", Type: field.TypeString, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
	}
	// AssessmentsTable holds the schema information for the "assessments" table.
	AssessmentsTable = &schema.Table{
		Name:       "assessments",
		Columns:    AssessmentsColumns,
		PrimaryKey: []*schema.Column{AssessmentsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "assessments_subjects_assessments",
				Columns:    []*schema.Column{AssessmentsColumns[2]},
				RefColumns: []*schema.Column{SubjectsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "assessment_user_id_subject_id",
				Columns: []*schema.Column{AssessmentsColumns[1], AssessmentsColumns[2]},
			},
		},
	}

	// UserSubjectLevelsColumns holds the columns for the "user_subject_levels" table.
	UserSubjectLevelsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "subject_id", Type: field.TypeString},
		{Name: "current_level_id", Type: field.TypeString, Nullable: true},
		{Name: "suggested_level_id", Type: field.TypeString, Nullable: true},
		{Name: "last_assessed_at", Type: field.TypeTime, Nullable: true},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// UserSubjectLevelsTable holds the schema information for the "user_subject_levels" table.
	UserSubjectLevelsTable = &schema.Table{
		Name:       "user_subject_levels",
		Columns:    UserSubjectLevelsColumns,
		PrimaryKey: []*schema.Column{UserSubjectLevelsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_subject_levels_subjects_placements",
				Columns:    []*schema.Column{UserSubjectLevelsColumns[2]},
				RefColumns: []*schema.Column{SubjectsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "usersubjectlevel_user_id_subject_id",
				Unique:  true,
				Columns: []*schema.Column{UserSubjectLevelsColumns[1], UserSubjectLevelsColumns[2]},
			},
		},
	}

	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "current_streak", Type: field.TypeInt, Default: 0},
		{Name: "longest_streak", Type: field.TypeInt, Default: 0},
		{Name: "last_quiz_date", Type: field.TypeString, Nullable: true},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       "users",
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
	}

	// QuizCategoriesColumns holds the columns for the "quiz_categories" table.
	QuizCategoriesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "subject_id", Type: field.TypeString},
		{Name: "level_id", Type: field.TypeString},
		{Name: "topic_name", Type: field.TypeString},
		{Name: "created_by", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	// QuizCategoriesTable holds the schema information for the "quiz_categories" table.
	QuizCategoriesTable = &schema.Table{
		Name:       "quiz_categories",
		Columns:    QuizCategoriesColumns,
		PrimaryKey: []*schema.Column{QuizCategoriesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quiz_categories_levels_categories",
				Columns:    []*schema.Column{QuizCategoriesColumns[2]},
				RefColumns: []*schema.Column{LevelsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// QuizzesColumns holds the columns for the "quizzes" table.
	QuizzesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "category_id", Type: field.TypeString},
		{Name: "questions", Type: field.TypeJSON},
		{Name: "question_count", Type: field.TypeInt},
		{Name: "time_limit_minutes", Type: field.TypeInt, Default: 0},
		{Name: "created_by", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	// QuizzesTable holds the schema information for the "quizzes" table.
	QuizzesTable = &schema.Table{
		Name:       "quizzes",
		Columns:    QuizzesColumns,
		PrimaryKey: []*schema.Column{QuizzesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quizzes_quiz_categories_quizzes",
				Columns:    []*schema.Column{QuizzesColumns[1]},
				RefColumns: []*schema.Column{QuizCategoriesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// AttemptsColumns holds the columns for the "attempts" table.
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "quiz_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "answers", Type: field.TypeJSON},
		{Name: "score", Type: field.TypeInt},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "time_taken_seconds", Type: field.TypeInt, Default: 0},
		{Name: "is_first_attempt", Type: field.TypeBool, Default: false},
		{Name: "completed_at", Type: field.TypeTime},
	}
	// AttemptsTable holds the schema information for the "attempts" table.
	AttemptsTable = &schema.Table{
		Name:       "attempts",
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "attempts_quizzes_attempts",
				Columns:    []*schema.Column{AttemptsColumns[1]},
				RefColumns: []*schema.Column{QuizzesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "attempt_user_id_quiz_id",
				Columns: []*schema.Column{AttemptsColumns[2], AttemptsColumns[1]},
			},
		},
	}

	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Nullable: true},
		{Name: "request_body", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "response_body", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "user_id", Type: field.TypeString, Nullable: true},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_purpose",
				Columns: []*schema.Column{LlmRequestEventsColumns[5]},
			},
			{
				Name:    "llmrequestevent_user_id",
				Columns: []*schema.Column{LlmRequestEventsColumns[13]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SubjectsTable,
		LevelsTable,
		QuestionsTable,
		AssessmentsTable,
		UserSubjectLevelsTable,
		UsersTable,
		QuizCategoriesTable,
		QuizzesTable,
		AttemptsTable,
		LlmRequestEventsTable,
	}
)

func init() {
	LevelsTable.ForeignKeys[0].RefTable = SubjectsTable
	QuestionsTable.ForeignKeys[0].RefTable = LevelsTable
	AssessmentsTable.ForeignKeys[0].RefTable = SubjectsTable
	UserSubjectLevelsTable.ForeignKeys[0].RefTable = SubjectsTable
	QuizCategoriesTable.ForeignKeys[0].RefTable = LevelsTable
	QuizzesTable.ForeignKeys[0].RefTable = QuizCategoriesTable
	AttemptsTable.ForeignKeys[0].RefTable = QuizzesTable
}
