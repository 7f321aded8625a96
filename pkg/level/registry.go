package level

// Registry 按生成顺序保存存活的障碍物
//
// 遍历与删除约定：
//   - ForEach 在调用开始时固定成员快照，按插入顺序逐个访问
//   - RemoveWhere 构建新的存活列表，不改动幸存者的相对顺序
//   - 在 ForEach 的回调中调用 RemoveWhere 是安全的：已移除的成员不会再被访问，
//     其余成员既不会被跳过也不会被重复访问
type Registry struct {
	items []*Obstacle
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{items: make([]*Obstacle, 0, 16)}
}

// Add 追加障碍物，均摊 O(1)
func (r *Registry) Add(o *Obstacle) {
	if o == nil {
		return
	}
	r.items = append(r.items, o)
}

// Len 返回存活障碍物数量
func (r *Registry) Len() int {
	return len(r.items)
}

// ForEach 按插入顺序对每个成员调用 fn，fn 可以原地修改成员
func (r *Registry) ForEach(fn func(o *Obstacle)) {
	snapshot := r.items
	for _, o := range snapshot {
		if o.removed {
			continue
		}
		fn(o)
	}
}

// RemoveWhere 移除所有满足 predicate 的成员
//
// 参数：
//   - predicate: 返回 true 表示移除
//   - onRemove: 在成员被移出之前调用（可为 nil），用于发送销毁通知
//
// 返回：
//   - int: 本次移除的数量
func (r *Registry) RemoveWhere(predicate func(o *Obstacle) bool, onRemove func(o *Obstacle)) int {
	removed := 0
	survivors := make([]*Obstacle, 0, len(r.items))
	for _, o := range r.items {
		if !predicate(o) {
			survivors = append(survivors, o)
			continue
		}
		if onRemove != nil {
			onRemove(o)
		}
		o.removed = true
		removed++
	}
	if removed == 0 {
		return 0
	}
	r.items = survivors
	return removed
}

// Clear 移除所有成员，onRemove 的语义同 RemoveWhere
func (r *Registry) Clear(onRemove func(o *Obstacle)) int {
	return r.RemoveWhere(func(*Obstacle) bool { return true }, onRemove)
}

// Snapshot 返回所有成员的只读快照（插入顺序）
func (r *Registry) Snapshot() []ObstacleState {
	out := make([]ObstacleState, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, o.snapshot())
	}
	return out
}
