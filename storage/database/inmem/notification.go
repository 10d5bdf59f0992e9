package inmemdb

import (
	"sort"

	"github.com/trezcool/kalendar/core/notification"
)

type notificationRepository struct {
	db *notificationTable
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db.notification}
}

func (repo *notificationRepository) CreateNotification(n notification.Notification) (notification.Notification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	row := n
	repo.db.rows = append(repo.db.rows, &row)
	return n, nil
}

func (repo *notificationRepository) QueryNotifications(recipient string) ([]notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var ns []notification.Notification
	for _, n := range repo.db.rows {
		if n.Recipient == recipient {
			ns = append(ns, *n)
		}
	}
	// newest first; rows created in the same instant keep the latest insert on top
	for i, j := 0, len(ns)-1; i < j; i, j = i+1, j-1 {
		ns[i], ns[j] = ns[j], ns[i]
	}
	sort.SliceStable(ns, func(i, j int) bool { return ns[i].CreatedAt.After(ns[j].CreatedAt) })
	return ns, nil
}

func (repo *notificationRepository) GetNotificationByID(id string) (notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, n := range repo.db.rows {
		if n.ID == id {
			return *n, nil
		}
	}
	return notification.Notification{}, notification.ErrNotFound
}

func (repo *notificationRepository) MarkRead(recipient string, ids ...string) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var changed int
	for _, n := range repo.db.rows {
		if n.Recipient != recipient || n.IsRead {
			continue
		}
		if len(ids) == 0 || wanted[n.ID] {
			n.IsRead = true
			changed++
		}
	}
	return changed, nil
}

func (repo *notificationRepository) DeleteNotification(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, n := range repo.db.rows {
		if n.ID == id {
			repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
			return nil
		}
	}
	return notification.ErrNotFound
}
