package common

// TodayListName is the title of the default list backed by the flat item
// collection.
const TodayListName = "Today"
