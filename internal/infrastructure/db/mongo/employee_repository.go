package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emsapp/employee-records/internal/core/domain"
	"github.com/emsapp/employee-records/internal/core/ports"
)

const employeesCollection = "employees"

// EmployeeRepository is the MongoDB-backed employee store.
type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(employeesCollection)}
}

type mongoEmployee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FirstName  string             `bson:"first_name"`
	LastName   string             `bson:"last_name"`
	Email      string             `bson:"email"`
	Position   string             `bson:"position"`
	Salary     float64            `bson:"salary"`
	Department string             `bson:"department"`
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]domain.Employee, error) {
	return r.Find(ctx, ports.EmployeeFilter{})
}

// Find runs a filtered query. The filter is translated into a bson predicate
// by buildFilter; an empty filter matches every document.
func (r *EmployeeRepository) Find(ctx context.Context, filter ports.EmployeeFilter) ([]domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, buildFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("find employees: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoEmployee
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}

	out := make([]domain.Employee, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoEmployee
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	e := doc.toDomain()
	return &e, nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoEmployee
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	e := doc.toDomain()
	return &e, nil
}

// FindTopBySalary returns the highest-paid employee when highest is true,
// otherwise the lowest-paid.
func (r *EmployeeRepository) FindTopBySalary(ctx context.Context, highest bool) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	order := 1
	if highest {
		order = -1
	}

	var doc mongoEmployee
	opts := options.FindOne().SetSort(bson.D{{Key: "salary", Value: order}})
	if err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee by salary extreme: %w", err)
	}
	e := doc.toDomain()
	return &e, nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count employees: %w", err)
	}
	return n > 0, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomain(employee)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	created := *employee
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(employee.ID)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"first_name": employee.FirstName,
		"last_name":  employee.LastName,
		"email":      employee.Email,
		"position":   employee.Position,
		"salary":     employee.Salary,
		"department": employee.Department,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEmployeeNotFound
	}

	updated := *employee
	return &updated, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the unique email index and the salary index used by
// the range and extreme queries.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "salary", Value: 1}}},
		{Keys: bson.D{{Key: "position", Value: 1}}},
		{Keys: bson.D{{Key: "department", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// buildFilter translates an EmployeeFilter into a bson predicate. Only set
// criteria contribute clauses; an empty filter yields an empty document.
func buildFilter(f ports.EmployeeFilter) bson.M {
	filter := bson.M{}

	if f.FirstName != "" {
		filter["first_name"] = f.FirstName
	}
	if f.LastName != "" {
		filter["last_name"] = f.LastName
	}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	if f.Position != "" {
		filter["position"] = f.Position
	}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if len(f.Positions) > 0 {
		filter["position"] = bson.M{"$in": f.Positions}
	}
	if len(f.Departments) > 0 {
		filter["department"] = bson.M{"$in": f.Departments}
	}

	salary := bson.M{}
	if f.SalaryFrom != nil {
		salary["$gte"] = *f.SalaryFrom
	}
	if f.SalaryTo != nil {
		salary["$lte"] = *f.SalaryTo
	}
	if f.SalaryAbove != nil {
		salary["$gt"] = *f.SalaryAbove
	}
	if f.SalaryBelow != nil {
		salary["$lt"] = *f.SalaryBelow
	}
	if len(salary) > 0 {
		filter["salary"] = salary
	}

	return filter
}

func (d mongoEmployee) toDomain() domain.Employee {
	return domain.Employee{
		ID:         d.ID.Hex(),
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Email:      d.Email,
		Position:   d.Position,
		Salary:     d.Salary,
		Department: d.Department,
	}
}

func fromDomain(e *domain.Employee) mongoEmployee {
	return mongoEmployee{
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Position:   e.Position,
		Salary:     e.Salary,
		Department: e.Department,
	}
}
