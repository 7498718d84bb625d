package state

import "github.com/nhle/todolists/internal/model"

// TodolistView is a todo-list decorated with client-only fields.
type TodolistView struct {
	model.TodoList
	Filter       model.FilterValue
	EntityStatus model.RequestStatus
}

func newTodolistView(l model.TodoList) TodolistView {
	return TodolistView{
		TodoList:     l,
		Filter:       model.FilterAll,
		EntityStatus: model.RequestIdle,
	}
}

// reduceTodolists is the transition function of the list slice. The
// returned slice never aliases the input.
func reduceTodolists(s []TodolistView, a Action) []TodolistView {
	switch a := a.(type) {
	case ListsLoaded:
		out := make([]TodolistView, 0, len(a.Lists))
		for _, l := range a.Lists {
			out = append(out, newTodolistView(l))
		}
		return out

	case ListAdded:
		out := make([]TodolistView, 0, len(s)+1)
		out = append(out, newTodolistView(a.List))
		return append(out, s...)

	case ListRenamed:
		return updateList(s, a.ID, func(v *TodolistView) { v.Title = a.Title })

	case ListFilterChanged:
		return updateList(s, a.ID, func(v *TodolistView) { v.Filter = a.Filter })

	case ListEntityStatusChanged:
		return updateList(s, a.ID, func(v *TodolistView) { v.EntityStatus = a.Status })

	case ListRemoved:
		out := make([]TodolistView, 0, len(s))
		for _, v := range s {
			if v.ID != a.ID {
				out = append(out, v)
			}
		}
		return out

	case ListsCleared:
		return []TodolistView{}
	}
	return s
}

func updateList(s []TodolistView, id string, fn func(*TodolistView)) []TodolistView {
	out := make([]TodolistView, len(s))
	copy(out, s)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
			break
		}
	}
	return out
}
