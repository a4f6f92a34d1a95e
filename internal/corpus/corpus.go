// Package corpus holds the built-in bilingual training data the models
// bootstrap from when no external corpus is configured.
package corpus

import "github.com/kailas-cloud/querylens/internal/domain"

// TrainingExamples returns the labeled intent corpus. Tokens are stored
// pre-tokenized and diacritic-folded, matching preprocessing output.
func TrainingExamples() []domain.TrainingExample {
	return []domain.TrainingExample{
		{Document: domain.Document{"find", "avenger", "movie"}, Label: domain.IntentSearchByTitle},
		{Document: domain.Document{"search", "spider", "man"}, Label: domain.IntentSearchByTitle},
		{Document: domain.Document{"tim", "phim", "batman"}, Label: domain.IntentSearchByTitle},
		{Document: domain.Document{"look", "iron", "man"}, Label: domain.IntentSearchByTitle},

		{Document: domain.Document{"action", "movie"}, Label: domain.IntentSearchByGenre},
		{Document: domain.Document{"comedy", "film"}, Label: domain.IntentSearchByGenre},
		{Document: domain.Document{"horror", "movie"}, Label: domain.IntentSearchByGenre},
		{Document: domain.Document{"romance", "phim"}, Label: domain.IntentSearchByGenre},
		{Document: domain.Document{"thriller", "movie"}, Label: domain.IntentSearchByGenre},

		{Document: domain.Document{"movie", "2024"}, Label: domain.IntentSearchByYear},
		{Document: domain.Document{"new", "movie"}, Label: domain.IntentSearchByYear},
		{Document: domain.Document{"latest", "film"}, Label: domain.IntentSearchByYear},
		{Document: domain.Document{"phim", "moi", "nhat"}, Label: domain.IntentSearchByYear},
		{Document: domain.Document{"movie", "nam", "2023"}, Label: domain.IntentSearchByYear},

		{Document: domain.Document{"popular", "movie"}, Label: domain.IntentSearchPopular},
		{Document: domain.Document{"trending", "film"}, Label: domain.IntentSearchPopular},
		{Document: domain.Document{"hot", "movie"}, Label: domain.IntentSearchPopular},
		{Document: domain.Document{"phim", "pho", "bien"}, Label: domain.IntentSearchPopular},

		{Document: domain.Document{"best", "movie"}, Label: domain.IntentSearchTopRated},
		{Document: domain.Document{"top", "rated", "film"}, Label: domain.IntentSearchTopRated},
		{Document: domain.Document{"hay", "nhat"}, Label: domain.IntentSearchTopRated},
		{Document: domain.Document{"good", "movie"}, Label: domain.IntentSearchTopRated},

		{Document: domain.Document{"similar", "movie"}, Label: domain.IntentSearchSimilar},
		{Document: domain.Document{"like", "avenger"}, Label: domain.IntentSearchSimilar},
		{Document: domain.Document{"tuong", "tu"}, Label: domain.IntentSearchSimilar},
		{Document: domain.Document{"giong", "phim"}, Label: domain.IntentSearchSimilar},

		{Document: domain.Document{"actor", "tom", "cruise"}, Label: domain.IntentSearchByActor},
		{Document: domain.Document{"dien", "vien", "brad", "pitt"}, Label: domain.IntentSearchByActor},
		{Document: domain.Document{"starring", "robert", "downey"}, Label: domain.IntentSearchByActor},
	}
}

// Documents returns the unlabeled documents: the intent corpus bodies
// plus a small movie-vocabulary supplement so spell correction and the
// co-occurrence embedding cover common query words the intent examples
// miss.
func Documents() []domain.Document {
	examples := TrainingExamples()
	docs := make([]domain.Document, 0, len(examples)+8)
	for _, ex := range examples {
		docs = append(docs, ex.Document)
	}
	docs = append(docs,
		domain.Document{"action", "movies", "2024"},
		domain.Document{"best", "comedy", "films"},
		domain.Document{"horror", "movies"},
		domain.Document{"romantic", "comedies"},
		domain.Document{"scifi", "movies"},
		domain.Document{"thriller", "films"},
		domain.Document{"animated", "movies", "documentary", "films"},
		domain.Document{"classic", "movies", "popular", "movies"},
	)
	return docs
}
