package state

import "github.com/nhle/todolists/internal/model"

// TaskView is a task decorated with its per-entity request status.
type TaskView struct {
	model.Task
	EntityStatus model.RequestStatus
}

// TasksState holds one ordered bucket of tasks per todo-list. Every list
// id in the list slice has a bucket here and vice versa.
type TasksState struct {
	Buckets map[string][]TaskView

	// Loaded records buckets whose fetch has completed.
	Loaded map[string]bool
}

func initialTasksState() TasksState {
	return TasksState{
		Buckets: map[string][]TaskView{},
		Loaded:  map[string]bool{},
	}
}

func (s TasksState) clone() TasksState {
	out := TasksState{
		Buckets: make(map[string][]TaskView, len(s.Buckets)),
		Loaded:  make(map[string]bool, len(s.Loaded)),
	}
	for id, bucket := range s.Buckets {
		out.Buckets[id] = append([]TaskView(nil), bucket...)
	}
	for id, ok := range s.Loaded {
		out.Loaded[id] = ok
	}
	return out
}

// reduceTasks is the transition function of the task slice. Besides its
// own actions it observes the list lifecycle events, and it ignores
// results for buckets that no longer exist so a late response cannot
// recreate a deleted list's tasks.
func reduceTasks(s TasksState, a Action) TasksState {
	switch a := a.(type) {
	case ListsLoaded:
		next := initialTasksState()
		for _, l := range a.Lists {
			next.Buckets[l.ID] = []TaskView{}
		}
		return next

	case ListAdded:
		next := s.clone()
		next.Buckets[a.List.ID] = []TaskView{}
		next.Loaded[a.List.ID] = true
		return next

	case ListRemoved:
		next := s.clone()
		delete(next.Buckets, a.ID)
		delete(next.Loaded, a.ID)
		return next

	case ListsCleared:
		return initialTasksState()

	case TasksLoaded:
		if _, ok := s.Buckets[a.ListID]; !ok {
			return s
		}
		next := s.clone()
		bucket := make([]TaskView, 0, len(a.Tasks))
		for _, t := range a.Tasks {
			bucket = append(bucket, TaskView{Task: t, EntityStatus: model.RequestIdle})
		}
		next.Buckets[a.ListID] = bucket
		next.Loaded[a.ListID] = true
		return next

	case TaskAdded:
		bucket, ok := s.Buckets[a.Task.TodoListID]
		if !ok {
			return s
		}
		next := s.clone()
		out := make([]TaskView, 0, len(bucket)+1)
		out = append(out, TaskView{Task: a.Task, EntityStatus: model.RequestIdle})
		next.Buckets[a.Task.TodoListID] = append(out, bucket...)
		return next

	case TaskUpdated:
		return updateTask(s, a.ListID, a.TaskID, func(v *TaskView) {
			v.Task = a.Patch.ApplyTask(v.Task)
		})

	case TaskEntityStatusChanged:
		return updateTask(s, a.ListID, a.TaskID, func(v *TaskView) {
			v.EntityStatus = a.Status
		})

	case TaskRemoved:
		bucket, ok := s.Buckets[a.ListID]
		if !ok {
			return s
		}
		next := s.clone()
		out := make([]TaskView, 0, len(bucket))
		for _, v := range bucket {
			if v.ID != a.TaskID {
				out = append(out, v)
			}
		}
		next.Buckets[a.ListID] = out
		return next
	}
	return s
}

func updateTask(s TasksState, listID, taskID string, fn func(*TaskView)) TasksState {
	bucket, ok := s.Buckets[listID]
	if !ok {
		return s
	}
	for i := range bucket {
		if bucket[i].ID != taskID {
			continue
		}
		next := s.clone()
		fn(&next.Buckets[listID][i])
		return next
	}
	return s
}

// FilterTaskViews selects the tasks shown under filter without changing
// their order.
func FilterTaskViews(tasks []TaskView, filter model.FilterValue) []TaskView {
	var want model.TaskStatus
	switch filter {
	case model.FilterActive:
		want = model.TaskStatusNew
	case model.FilterCompleted:
		want = model.TaskStatusCompleted
	default:
		return append([]TaskView(nil), tasks...)
	}

	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == want {
			out = append(out, t)
		}
	}
	return out
}
