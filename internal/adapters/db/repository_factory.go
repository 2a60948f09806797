package db

// RepositoryFactory creates repository instances sharing one connection
type RepositoryFactory struct {
	conn *Connection
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(conn *Connection) *RepositoryFactory {
	return &RepositoryFactory{conn: conn}
}

// GetListingRepository returns a listing repository
func (f *RepositoryFactory) GetListingRepository() *ListingRepository {
	return NewListingRepository(f.conn)
}

// GetAttachmentRepository returns an attachment repository
func (f *RepositoryFactory) GetAttachmentRepository() *AttachmentRepository {
	return NewAttachmentRepository(f.conn)
}
