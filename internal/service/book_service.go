package service

import (
	"librosrec/internal/models"
	"librosrec/internal/repository"
)

// BookService expone las consultas de catálogo (sobre el catálogo de
// contenido, que es el que tiene la lista completa).
type BookService struct {
	books *repository.BookRepository
}

func NewBookService(b *repository.BookRepository) *BookService {
	return &BookService{books: b}
}

func (s *BookService) GetBook(bookID int) (*models.BookDoc, bool) {
	return s.books.GetByBookID(bookID)
}

func (s *BookService) Search(q, author string, limit, offset int) []models.BookDoc {
	return s.books.Search(q, author, limit, offset)
}

func (s *BookService) Top(metric string, limit int) []models.BookDoc {
	return s.books.Top(metric, limit)
}

// Resolve aplica la misma resolución de título que usan las estrategias por
// título (substring + desempate por ratings_count) y devuelve el libro.
func (s *BookService) Resolve(title string) (*models.BookDoc, bool) {
	idx, ok := s.books.ResolveTitle(title)
	if !ok {
		return nil, false
	}
	b := s.books.At(idx)
	return &b, true
}
