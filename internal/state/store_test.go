package state

import (
	"fmt"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todolists/internal/model"
)

func list(id, title string) model.TodoList {
	return model.TodoList{ID: id, Title: title, AddedDate: "2024-05-01T10:00:00"}
}

func task(listID, id string, status model.TaskStatus) model.Task {
	return model.Task{
		ID:          id,
		TodoListID:  listID,
		Title:       "task " + id,
		Description: "desc " + id,
		Status:      status,
		Priority:    model.TaskPriorityMiddle,
		Deadline:    "2024-06-01T00:00:00",
	}
}

func TestNewStoreInitialState(t *testing.T) {
	s := New()

	snap := s.Snapshot()
	assert.Equal(t, model.RequestIdle, snap.App.Status)
	assert.Nil(t, snap.App.Error)
	assert.False(t, snap.App.Initialized)
	assert.False(t, snap.Session.LoggedIn)
	assert.Empty(t, snap.Todolists)
	assert.Empty(t, snap.Tasks.Buckets)
}

func TestListAddedIsAlwaysFirst(t *testing.T) {
	s := New()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("L%d", i)
		s.Dispatch(ListAdded{List: list(id, id)})

		lists := s.Todolists()
		require.Len(t, lists, i+1)
		assert.Equal(t, id, lists[0].ID)
	}
}

func TestListAddedCreatesDecoratedRecordAndBucket(t *testing.T) {
	s := New()

	s.Dispatch(ListAdded{List: model.TodoList{ID: "L1", Title: "Groceries", AddedDate: "2024-05-01", Order: 0}})

	lists := s.Todolists()
	require.Len(t, lists, 1)
	assert.Equal(t, "L1", lists[0].ID)
	assert.Equal(t, "Groceries", lists[0].Title)
	assert.Equal(t, model.FilterAll, lists[0].Filter)
	assert.Equal(t, model.RequestIdle, lists[0].EntityStatus)

	bucket, ok := s.Tasks("L1")
	assert.True(t, ok)
	assert.Empty(t, bucket)
	assert.True(t, s.TasksLoaded("L1"))
}

func TestListRemovedDeletesBucketInSameDispatch(t *testing.T) {
	s := New()
	s.Dispatch(ListsLoaded{Lists: []model.TodoList{list("L1", "a"), list("L2", "b")}})
	s.Dispatch(TasksLoaded{ListID: "L1", Tasks: []model.Task{task("L1", "t1", model.TaskStatusNew)}})

	changes, unsubscribe := s.Subscribe()
	defer unsubscribe()

	var wg gosync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			snap := s.Snapshot()
			_, hasBucket := snap.Tasks.Buckets["L1"]
			hasList := false
			for _, l := range snap.Todolists {
				if l.ID == "L1" {
					hasList = true
				}
			}
			if hasBucket != hasList {
				t.Errorf("observed list=%v bucket=%v", hasList, hasBucket)
				return
			}
		}
	}()

	s.Dispatch(ListRemoved{ID: "L1"})
	close(stop)
	wg.Wait()

	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("no change notification")
	}

	_, ok := s.Todolist("L1")
	assert.False(t, ok)
	_, ok = s.Tasks("L1")
	assert.False(t, ok)
	_, ok = s.Tasks("L2")
	assert.True(t, ok)
}

func TestListsLoadedReplacesCollectionAndBuckets(t *testing.T) {
	s := New()
	s.Dispatch(ListAdded{List: list("old", "old")})

	s.Dispatch(ListsLoaded{Lists: []model.TodoList{list("A", "a"), list("B", "b")}})

	lists := s.Todolists()
	require.Len(t, lists, 2)
	assert.Equal(t, []string{"A", "B"}, []string{lists[0].ID, lists[1].ID})
	for _, l := range lists {
		assert.Equal(t, model.FilterAll, l.Filter)
		assert.Equal(t, model.RequestIdle, l.EntityStatus)
	}

	snap := s.Snapshot()
	assert.Len(t, snap.Tasks.Buckets, 2)
	assert.NotContains(t, snap.Tasks.Buckets, "old")
	assert.False(t, s.TasksLoaded("A"))
}

func TestListRenamedKeepsPositionAndIdentity(t *testing.T) {
	s := New()
	s.Dispatch(ListsLoaded{Lists: []model.TodoList{list("A", "a"), list("B", "b"), list("C", "c")}})
	s.Dispatch(ListFilterChanged{ID: "B", Filter: model.FilterCompleted})

	s.Dispatch(ListRenamed{ID: "B", Title: "renamed"})

	lists := s.Todolists()
	assert.Equal(t, "B", lists[1].ID)
	assert.Equal(t, "renamed", lists[1].Title)
	assert.Equal(t, model.FilterCompleted, lists[1].Filter)
	assert.Equal(t, "a", lists[0].Title)
}

func TestTasksLoadedIgnoredForUnknownList(t *testing.T) {
	s := New()
	s.Dispatch(ListsLoaded{Lists: []model.TodoList{list("A", "a")}})
	s.Dispatch(ListRemoved{ID: "A"})

	s.Dispatch(TasksLoaded{ListID: "A", Tasks: []model.Task{task("A", "t1", model.TaskStatusNew)}})
	s.Dispatch(TaskAdded{Task: task("A", "t2", model.TaskStatusNew)})

	_, ok := s.Tasks("A")
	assert.False(t, ok)
	assert.False(t, s.TasksLoaded("A"))
}

func TestTaskAddedIsPrepended(t *testing.T) {
	s := New()
	s.Dispatch(ListsLoaded{Lists: []model.TodoList{list("A", "a")}})
	s.Dispatch(TasksLoaded{ListID: "A", Tasks: []model.Task{
		task("A", "t1", model.TaskStatusNew),
		task("A", "t2", model.TaskStatusNew),
	}})

	s.Dispatch(TaskAdded{Task: task("A", "t3", model.TaskStatusNew)})

	bucket, _ := s.Tasks("A")
	require.Len(t, bucket, 3)
	assert.Equal(t, []string{"t3", "t1", "t2"}, []string{bucket[0].ID, bucket[1].ID, bucket[2].ID})
	assert.True(t, s.TasksLoaded("A"))
}

func TestTaskUpdatedOnlyChangesPatchedFields(t *testing.T) {
	s := New()
	s.Dispatch(ListsLoaded{Lists: []model.TodoList{list("A", "a")}})
	original := task("A", "t1", model.TaskStatusInProgress)
	s.Dispatch(TasksLoaded{ListID: "A", Tasks: []model.Task{original}})

	s.Dispatch(TaskUpdated{ListID: "A", TaskID: "t1", Patch: model.PatchTitle("X")})

	got, ok := s.Task("A", "t1")
	require.True(t, ok)
	want := original
	want.Title = "X"
	assert.Equal(t, want, got.Task)
	assert.Equal(t, model.RequestIdle, got.EntityStatus)
}

func TestTaskEntityStatusAndRemoval(t *testing.T) {
	s := New()
	s.Dispatch(ListsLoaded{Lists: []model.TodoList{list("A", "a")}})
	s.Dispatch(TasksLoaded{ListID: "A", Tasks: []model.Task{
		task("A", "t1", model.TaskStatusNew),
		task("A", "t2", model.TaskStatusNew),
	}})

	s.Dispatch(TaskEntityStatusChanged{ListID: "A", TaskID: "t2", Status: model.RequestLoading})
	got, _ := s.Task("A", "t2")
	assert.Equal(t, model.RequestLoading, got.EntityStatus)
	other, _ := s.Task("A", "t1")
	assert.Equal(t, model.RequestIdle, other.EntityStatus)

	s.Dispatch(TaskRemoved{ListID: "A", TaskID: "t2"})
	bucket, _ := s.Tasks("A")
	require.Len(t, bucket, 1)
	assert.Equal(t, "t1", bucket[0].ID)
}

func TestFilterTasks(t *testing.T) {
	s := New()
	s.Dispatch(ListsLoaded{Lists: []model.TodoList{list("A", "a")}})
	s.Dispatch(TasksLoaded{ListID: "A", Tasks: []model.Task{
		task("A", "n1", model.TaskStatusNew),
		task("A", "c1", model.TaskStatusCompleted),
		task("A", "p1", model.TaskStatusInProgress),
		task("A", "n2", model.TaskStatusNew),
		task("A", "d1", model.TaskStatusDraft),
		task("A", "c2", model.TaskStatusCompleted),
	}})

	ids := func(views []TaskView) []string {
		out := make([]string, 0, len(views))
		for _, v := range views {
			out = append(out, v.ID)
		}
		return out
	}

	all := s.FilterTasks(model.FilterAll, "A")
	active := s.FilterTasks(model.FilterActive, "A")
	completed := s.FilterTasks(model.FilterCompleted, "A")

	assert.Equal(t, []string{"n1", "c1", "p1", "n2", "d1", "c2"}, ids(all))
	assert.Equal(t, []string{"n1", "n2"}, ids(active))
	assert.Equal(t, []string{"c1", "c2"}, ids(completed))

	var rest []string
	for _, v := range all {
		if v.Status == model.TaskStatusInProgress || v.Status == model.TaskStatusDraft {
			rest = append(rest, v.ID)
		}
	}
	assert.Len(t, all, len(active)+len(completed)+len(rest))

	bucket, _ := s.Tasks("A")
	assert.Equal(t, ids(all), ids(bucket))
	assert.Empty(t, s.FilterTasks(model.FilterActive, "missing"))
}

func TestListsClearedEmptiesEverything(t *testing.T) {
	s := New()
	s.Dispatch(ListsLoaded{Lists: []model.TodoList{list("A", "a")}})
	s.Dispatch(TasksLoaded{ListID: "A", Tasks: []model.Task{task("A", "t1", model.TaskStatusNew)}})

	s.Dispatch(SetLoggedIn{LoggedIn: false}, ListsCleared{})

	snap := s.Snapshot()
	assert.Empty(t, snap.Todolists)
	assert.Empty(t, snap.Tasks.Buckets)
	assert.Empty(t, snap.Tasks.Loaded)
}

func TestAppAndSessionTransitions(t *testing.T) {
	s := New()
	user := &model.User{ID: 7, Email: "me@example.com", Login: "me"}

	s.Dispatch(SetStatus{Status: model.RequestLoading}, ErrorMessage("boom"), SetInitialized{Initialized: true})
	s.Dispatch(SetCaptchaURL{URL: "http://captcha"}, SetLoggedIn{LoggedIn: true}, SetUser{User: user})

	app := s.App()
	require.NotNil(t, app.Error)
	assert.Equal(t, "boom", *app.Error)
	assert.Equal(t, model.RequestLoading, app.Status)
	assert.True(t, app.Initialized)

	sess := s.Session()
	assert.True(t, sess.LoggedIn)
	assert.Empty(t, sess.CaptchaURL)
	assert.Equal(t, user, sess.User)

	s.Dispatch(SetError{}, SetLoggedIn{LoggedIn: false})
	assert.Nil(t, s.App().Error)
	assert.Nil(t, s.Session().User)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := New()
	s.Dispatch(ListsLoaded{Lists: []model.TodoList{list("A", "a")}}, ErrorMessage("e"))

	snap := s.Snapshot()
	snap.Todolists[0].Title = "mutated"
	*snap.App.Error = "mutated"
	snap.Tasks.Buckets["A"] = append(snap.Tasks.Buckets["A"], TaskView{})

	assert.Equal(t, "a", s.Todolists()[0].Title)
	assert.Equal(t, "e", *s.App().Error)
	bucket, _ := s.Tasks("A")
	assert.Empty(t, bucket)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	s := New()
	ch, unsubscribe := s.Subscribe()

	unsubscribe()
	unsubscribe()
	s.Dispatch(SetStatus{Status: model.RequestLoading})

	_, open := <-ch
	assert.False(t, open)
}
